// CLAUDE:SUMMARY Sentinel errors for the vigie service: invalid input, not found, window required.
package vigie

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when request input fails validation. Always
// raised before any storage access; out-of-range values are rejected, never
// clamped.
var ErrInvalidInput = errors.New("vigie: invalid input")

// ErrNotFound is returned for a missing tracked query. A query belonging to
// another tenant yields the same error with the same message — the caller
// cannot tell the two cases apart.
var ErrNotFound = errors.New("vigie: not found")

// ErrWindowRequired is returned when a derivation with a mandatory window is
// called without one. It is an invalid-input error.
var ErrWindowRequired = fmt.Errorf("%w: window parameter is required", ErrInvalidInput)
