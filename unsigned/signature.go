package unsigned

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Signature is a secp256k1 signature in the venue's r/s/v form. This
// package never produces one; callers sign DigestToSign externally and
// hand the result back for payload assembly.
type Signature struct {
	R common.Hash
	S common.Hash
	V byte
}

// SignatureFromBytes converts a raw 65-byte [R || S || V] signature, the
// shape secp256k1 recoverable signing yields, normalizing V to 27/28.
func SignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != 65 {
		return Signature{}, fmt.Errorf(
			"invalid signature length: got %d, want 65",
			len(sig),
		)
	}

	v := sig[64]
	if v < 27 {
		v += 27
	}

	return Signature{
		R: common.BytesToHash(sig[:32]),
		S: common.BytesToHash(sig[32:64]),
		V: v,
	}, nil
}

// MarshalJSON encodes the signature as:
// { "r": "0x...", "s": "0x...", "v": <number> }
func (s Signature) MarshalJSON() ([]byte, error) {
	type alias struct {
		R string `json:"r"`
		S string `json:"s"`
		V uint8  `json:"v"`
	}

	a := alias{
		R: hexutil.Encode(s.R[:]),
		S: hexutil.Encode(s.S[:]),
		V: uint8(s.V),
	}

	return json.Marshal(a)
}

// UnmarshalJSON decodes from:
// { "r": "0x...", "s": "0x...", "v": <number> }
func (s *Signature) UnmarshalJSON(data []byte) error {
	type alias struct {
		R string `json:"r"`
		S string `json:"s"`
		V uint8  `json:"v"`
	}

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	// Decode R
	rBytes, err := hexutil.Decode(a.R)
	if err != nil {
		return fmt.Errorf("invalid r: %w", err)
	}
	if len(rBytes) != len(s.R) {
		return fmt.Errorf(
			"invalid r length: got %d, want %d",
			len(rBytes),
			len(s.R),
		)
	}
	copy(s.R[:], rBytes)

	// Decode S
	sBytes, err := hexutil.Decode(a.S)
	if err != nil {
		return fmt.Errorf("invalid s: %w", err)
	}
	if len(sBytes) != len(s.S) {
		return fmt.Errorf(
			"invalid s length: got %d, want %d",
			len(sBytes),
			len(s.S),
		)
	}
	copy(s.S[:], sBytes)

	// V
	s.V = byte(a.V)

	return nil
}

func (s Signature) String() string {
	return fmt.Sprintf(
		"R: %s, S: %s, V: %d",
		hexutil.Encode(s.R[:]),
		hexutil.Encode(s.S[:]),
		s.V,
	)
}
