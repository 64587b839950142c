package unsigned

import "errors"

// Preparation failures callers are expected to match with errors.Is.
var (
	// ErrSymbolNotFound means the symbol is absent from the venue universe
	// loaded at construction time.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrInvalidNumericField means a numeric string field failed validation.
	ErrInvalidNumericField = errors.New("invalid numeric field")

	// ErrBelowMinimumDeposit means a bridge deposit is below the credited
	// minimum and would be swallowed without a refund.
	ErrBelowMinimumDeposit = errors.New("deposit below bridge minimum")

	// ErrSerialization means the canonical encoding of an action failed.
	ErrSerialization = errors.New("serialization failed")

	// ErrSigningDomainMismatch means the key class offered for signing does
	// not match the domain the transaction was hashed under.
	ErrSigningDomainMismatch = errors.New("signing domain mismatch")
)
