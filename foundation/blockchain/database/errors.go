package database

import (
	"errors"
	"fmt"
)

// Validation failures for individual transactions. These are recoverable
// outcomes returned to the caller, distinct from cryptographic or
// environment failures which are reported as their own errors at the point
// of signing or key loading.
var (
	ErrMissingSignature = errors.New("transaction has no signature")
	ErrInvalidSignature = errors.New("invalid signature")
)

// ChainError reports the first block that failed chain validation. The
// chain is never repaired automatically.
type ChainError struct {
	Number uint64
	Err    error
}

// Error implements the error interface.
func (ce *ChainError) Error() string {
	return fmt.Sprintf("block %d: %s", ce.Number, ce.Err)
}

// Unwrap exposes the underlying validation failure.
func (ce *ChainError) Unwrap() error {
	return ce.Err
}
