package unsigned

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/mo"
)

func TestVerifySigningDomain(t *testing.T) {
	agent := &UnsignedTransaction{IsAgentSignature: true}
	if err := agent.VerifySigningDomain(true); err != nil {
		t.Fatalf("agent key on an agent action must pass: %v", err)
	}
	if err := agent.VerifySigningDomain(false); !errors.Is(err, ErrSigningDomainMismatch) {
		t.Fatalf("expected ErrSigningDomainMismatch, got %v", err)
	}

	owner := &UnsignedTransaction{IsAgentSignature: false}
	if err := owner.VerifySigningDomain(false); err != nil {
		t.Fatalf("owner key on a user-signed action must pass: %v", err)
	}
	if err := owner.VerifySigningDomain(true); !errors.Is(err, ErrSigningDomainMismatch) {
		t.Fatalf("expected ErrSigningDomainMismatch, got %v", err)
	}
}

func testSignature() Signature {
	return Signature{
		R: common.HexToHash("0x637b37dd731507cdd24f46532ca8ba6eec616952c56218baeff04144e4a77073"),
		S: common.HexToHash("0x11a6a24900e6e314136d2592e2f8d502cd89b7c15b198e1bee043c9589f9fad7"),
		V: 27,
	}
}

func TestNewExchangePayloadJSON(t *testing.T) {
	tx := &UnsignedTransaction{
		ActionPayload: json.RawMessage(`{"type":"cancel","cancels":[{"a":4,"o":77738308}]}`),
		Nonce:         1677777606040,
		VaultAddress:  mo.Some(common.HexToAddress("0x1719884EB866CB12B2287399B15F7DB5E7D775EA")),
	}

	got, err := json.Marshal(NewExchangePayload(tx, testSignature()))
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	want := `{"action":{"type":"cancel","cancels":[{"a":4,"o":77738308}]},` +
		`"signature":{"r":"0x637b37dd731507cdd24f46532ca8ba6eec616952c56218baeff04144e4a77073",` +
		`"s":"0x11a6a24900e6e314136d2592e2f8d502cd89b7c15b198e1bee043c9589f9fad7","v":27},` +
		`"nonce":1677777606040,` +
		`"vaultAddress":"0x1719884eb866cb12b2287399b15f7db5e7d775ea"}`
	if string(got) != want {
		t.Fatalf("payload mismatch:\nexpected %s\ngot      %s", want, got)
	}
}

// vaultAddress must serialize as an explicit null when absent, not be
// omitted.
func TestNewExchangePayloadNullVault(t *testing.T) {
	tx := &UnsignedTransaction{
		ActionPayload: json.RawMessage(`{"type":"cancel","cancels":[]}`),
		Nonce:         1,
	}

	got, err := json.Marshal(NewExchangePayload(tx, testSignature()))
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	raw, ok := decoded["vaultAddress"]
	if !ok {
		t.Fatal("vaultAddress key must be present")
	}
	if string(raw) != "null" {
		t.Fatalf("expected null vaultAddress, got %s", raw)
	}
}

func TestSignatureJSONRoundTrip(t *testing.T) {
	sig := testSignature()

	data, err := json.Marshal(sig)
	if err != nil {
		t.Fatalf("failed to marshal signature: %v", err)
	}

	var decoded Signature
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal signature: %v", err)
	}

	if decoded != sig {
		t.Fatalf("round trip mismatch: %s vs %s", decoded, sig)
	}
}

func TestSignatureUnmarshalRejectsBadLengths(t *testing.T) {
	var sig Signature
	err := json.Unmarshal([]byte(`{"r":"0x1234","s":"0x1234","v":27}`), &sig)
	if err == nil {
		t.Fatal("expected error for short r value")
	}
}
