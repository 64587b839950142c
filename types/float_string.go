package types

import (
	"encoding/json"

	"github.com/corvan/hl-prepare/internal/utils"
)

// FloatString is a float64 the venue serializes as either a JSON string
// or a bare number depending on the endpoint.
type FloatString float64

// UnmarshalJSON accepts a quoted decimal string, a plain number, or null.
func (f *FloatString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := utils.StringToFloat(s)
		if err != nil {
			return err
		}
		*f = FloatString(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FloatString(v)
	return nil
}

// String renders the value in the venue's wire form.
func (f FloatString) String() string {
	s, _ := utils.FloatToWire(f.Raw())
	return s
}

// Raw returns the underlying float64.
func (f FloatString) Raw() float64 {
	return float64(f)
}
