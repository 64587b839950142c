package types

import (
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vmihailenco/msgpack/v5"
)

const cloidLength = 16

// Cloid is a 16-byte client order ID. The venue treats it as an opaque
// 128-bit value; on the wire it always travels as a 0x-prefixed hex string.
type Cloid [cloidLength]byte

var cloidType = reflect.TypeFor[Cloid]()

// BytesToCloid returns the Cloid with value b, cropped from the left if b
// is longer than 16 bytes.
func BytesToCloid(b []byte) Cloid {
	var c Cloid
	c.SetBytes(b)
	return c
}

// HexToCloid parses a hex string into a Cloid, cropped from the left if
// the value is longer than 16 bytes.
func HexToCloid(s string) Cloid {
	return BytesToCloid(common.FromHex(s))
}

// BigToCloid returns the Cloid holding the byte representation of b.
func BigToCloid(b *big.Int) Cloid {
	return BytesToCloid(b.Bytes())
}

// SetBytes sets the Cloid to the value of b, right-aligned and cropped
// from the left if b is longer than 16 bytes.
func (c *Cloid) SetBytes(b []byte) {
	if len(b) > len(c) {
		b = b[len(b)-cloidLength:]
	}

	copy(c[cloidLength-len(b):], b)
}

// Hex returns the 0x-prefixed hex form the venue expects on the wire.
func (c Cloid) Hex() string { return hexutil.Encode(c[:]) }

func (c Cloid) String() string {
	return c.Hex()
}

// UnmarshalJSON parses a Cloid from fixed-length hex.
func (c *Cloid) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON(cloidType, input, c[:])
}

// MarshalText returns the hex representation of c.
func (c Cloid) MarshalText() ([]byte, error) {
	return hexutil.Bytes(c[:]).MarshalText()
}

// EncodeMsgpack writes the Cloid as a msgpack string. The action hash
// covers this encoding, so it must stay a hex string, never raw bytes.
func (c Cloid) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(c.Hex())
}

func (c *Cloid) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}

	*c = HexToCloid(s)
	return nil
}
