package unsigned

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/samber/mo"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/corvan/hl-prepare/constants"
)

// hashAction creates a Keccak256 hash of the action following the Hyperliquid
// protocol: msgpack(action) || nonce as 8 big-endian bytes || vault marker.
// Compact ints match the venue's canonical msgpack encoding.
func hashAction(a action, vaultAddress mo.Option[common.Address], nonce uint64) (common.Hash, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(a); err != nil {
		return common.Hash{}, fmt.Errorf("failed to marshal action: %w", err)
	}

	data := buf.Bytes()

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)
	data = append(data, nonceBytes...)

	if v, ok := vaultAddress.Get(); ok {
		data = append(data, 0x01)
		data = append(data, v.Bytes()...)
	} else {
		data = append(data, 0x00)
	}

	return crypto.Keccak256Hash(data), nil
}

// agentEnvelope wraps an action hash in the typed-data message an agent key
// signs. The source field carries the vault address the action applies to,
// or the zero address when acting on the signer's own account.
func agentEnvelope(
	hash common.Hash,
	vaultAddress mo.Option[common.Address],
) apitypes.TypedDataMessage {
	source := strings.ToLower(vaultAddress.OrElse(constants.ZERO_ADDRESS).Hex())

	return apitypes.TypedDataMessage{
		"source":       source,
		"connectionId": hash,
	}
}

func agentPayload(
	envelope apitypes.TypedDataMessage,
) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(constants.AGENT_CHAIN_ID),
			VerifyingContract: "0x0000000000000000000000000000000000000000",
		},
		Message: envelope,
	}
}

// agentDigest computes the digest an agent key signs for an action.
func agentDigest(a action, vaultAddress mo.Option[common.Address], nonce uint64) (common.Hash, error) {
	actionHash, err := hashAction(a, vaultAddress, nonce)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to create action hash: %w", err)
	}

	typedData := agentPayload(agentEnvelope(actionHash, vaultAddress))

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf(
			"failed generating hash for typed data: %w",
			err,
		)
	}

	return common.BytesToHash(hash), nil
}

func userSignedPayload(
	a userSignedAction,
	isMainnet bool,
) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			a.primaryType(): a.typedDataTypes(),
		},
		PrimaryType: a.primaryType(),
		Domain: apitypes.TypedDataDomain{
			Name:              "HyperliquidSignTransaction",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(domainChainId(isMainnet)),
			VerifyingContract: "0x0000000000000000000000000000000000000000",
		},
		Message: a.typedDataMessage(),
	}
}

// userSignedDigest computes the digest the account owner key signs for a
// user-signed action.
func userSignedDigest(a userSignedAction, isMainnet bool) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(userSignedPayload(a, isMainnet))
	if err != nil {
		return common.Hash{}, fmt.Errorf(
			"failed generating hash for typed data: %w",
			err,
		)
	}

	return common.BytesToHash(hash), nil
}

// domainChainId is the settlement chain id bound into the user-signed
// typed-data domain.
func domainChainId(isMainnet bool) int64 {
	if isMainnet {
		return constants.ARBITRUM_CHAIN_ID
	}
	return constants.ARBITRUM_SEPOLIA_CHAIN_ID
}

// signatureChainId is the hex chain id embedded in user-signed action
// payloads. It is not part of the signed fields.
func signatureChainId(isMainnet bool) string {
	if isMainnet {
		return constants.ARBITRUM_CHAIN_ID_HEX
	}
	return constants.ARBITRUM_SEPOLIA_CHAIN_ID_HEX
}
