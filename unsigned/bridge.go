package unsigned

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/mo"

	"github.com/corvan/hl-prepare/constants"
)

// erc20TransferSelector is the 4-byte selector of transfer(address,uint256).
const erc20TransferSelector = "a9059cbb"

// ChainCall describes a raw settlement-chain contract call. It is executed
// with the caller's own chain tooling, never posted to the venue.
type ChainCall struct {
	To    common.Address `json:"to"`
	Data  string         `json:"data"`
	Value string         `json:"value"`
}

// usdcTransferData builds ERC-20 transfer calldata with both arguments
// left-padded to 32 bytes.
func usdcTransferData(recipient common.Address, amount int64) string {
	return fmt.Sprintf(
		"0x%s%064x%064x",
		erc20TransferSelector,
		new(big.Int).SetBytes(recipient.Bytes()),
		amount,
	)
}

// PrepareBridgeDeposit builds the USDC transfer that funds the venue account
// from the settlement chain. amount is in USDC base units (6 decimals);
// amounts below the bridge minimum are rejected.
//
// The returned component is not venue-signed: DigestToSign and Nonce are
// sentinel zeros and the caller supplies chain gas and nonce itself.
func (b *Builder) PrepareBridgeDeposit(amount int64) (ChainCall, *UnsignedTransaction, error) {
	if amount < constants.MIN_DEPOSIT_USDC {
		return ChainCall{}, nil, fmt.Errorf(
			"%w: %d USDC base units, minimum %d",
			ErrBelowMinimumDeposit, amount, constants.MIN_DEPOSIT_USDC,
		)
	}

	bridge := constants.BRIDGE_TESTNET
	usdc := constants.USDC_TESTNET
	if b.rest.IsMainnet() {
		bridge = constants.BRIDGE_MAINNET
		usdc = constants.USDC_MAINNET
	}

	call := ChainCall{
		To:    usdc,
		Data:  usdcTransferData(bridge, amount),
		Value: "0",
	}

	payload, err := json.Marshal(call)
	if err != nil {
		return ChainCall{}, nil, fmt.Errorf("%w: marshal bridge call: %v", ErrSerialization, err)
	}

	return call, &UnsignedTransaction{
		ActionPayload:    payload,
		Nonce:            0,
		DigestToSign:     common.Hash{},
		VaultAddress:     mo.None[common.Address](),
		DomainChainId:    mo.None[int64](),
		HyperliquidChain: mo.None[string](),
		IsAgentSignature: false,
	}, nil
}
