package unsigned

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/mo"
)

// UnsignedTransaction carries everything an external signer needs to turn
// a prepared action into a submittable payload. Treat it as read-only
// once returned; every field is fixed at preparation time.
type UnsignedTransaction struct {
	// ActionPayload is the canonical JSON action, exactly as it must
	// appear in the submitted payload.
	ActionPayload json.RawMessage

	// Nonce is the millisecond nonce bound into DigestToSign. For
	// user-signed actions it also appears inside the action itself.
	Nonce uint64

	// DigestToSign is the 32-byte EIP-712 digest to sign. Zero for bridge
	// deposits, which are signed as ordinary settlement-chain calls.
	DigestToSign common.Hash

	// VaultAddress is the vault the action acts for, when any. Absent for
	// user-signed actions and bridge deposits.
	VaultAddress mo.Option[common.Address]

	// DomainChainId is the chain id of the EIP-712 domain DigestToSign
	// was derived under. Absent for bridge deposits.
	DomainChainId mo.Option[int64]

	// HyperliquidChain is the network name user-signed actions embed.
	HyperliquidChain mo.Option[string]

	// IsAgentSignature reports which key class must produce the
	// signature: an agent key when true, the account owner key when
	// false.
	IsAgentSignature bool
}

// VerifySigningDomain checks the caller's key class against the domain
// the transaction was hashed under, so an agent key is never offered for
// an owner-signed action or the other way around.
func (tx *UnsignedTransaction) VerifySigningDomain(isAgentKey bool) error {
	if tx.IsAgentSignature == isAgentKey {
		return nil
	}
	if tx.IsAgentSignature {
		return fmt.Errorf(
			"%w: action must be signed with an agent key",
			ErrSigningDomainMismatch,
		)
	}
	return fmt.Errorf(
		"%w: action must be signed with the account owner key",
		ErrSigningDomainMismatch,
	)
}

// ExchangePayload is the body POSTed to /exchange once the digest has
// been signed. VaultAddress marshals as null when absent.
type ExchangePayload struct {
	Action       json.RawMessage `json:"action"`
	Signature    Signature       `json:"signature"`
	Nonce        uint64          `json:"nonce"`
	VaultAddress *string         `json:"vaultAddress"`
}

// NewExchangePayload assembles the submittable payload from a prepared
// transaction and its externally produced signature.
func NewExchangePayload(tx *UnsignedTransaction, sig Signature) ExchangePayload {
	var vaultAddress *string
	if vault, ok := tx.VaultAddress.Get(); ok {
		addr := strings.ToLower(vault.Hex())
		vaultAddress = &addr
	}

	return ExchangePayload{
		Action:       tx.ActionPayload,
		Signature:    sig,
		Nonce:        tx.Nonce,
		VaultAddress: vaultAddress,
	}
}
