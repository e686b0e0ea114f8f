// Package qerr defines the error kinds shared across the QRNG core so
// callers can branch with errors.Is instead of matching message text.
package qerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter covers bad bit counts, bad range bounds and
	// empty test input. Never retried internally.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrBackendUnavailable marks a failed circuit execution. The whole
	// generation request fails; no partial bitstrings are exposed.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// InvalidParam wraps ErrInvalidParameter with the operation name and
// the offending parameter.
func InvalidParam(op, param string, value any) error {
	return fmt.Errorf("%s: %s=%v: %w", op, param, value, ErrInvalidParameter)
}

// Unavailable wraps a backend failure with the operation name. Both the
// kind and the cause stay reachable through errors.Is/errors.As.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, cause)
}
