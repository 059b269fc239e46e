package vault

import "errors"

var (
	// ErrInvalidResult marks a contract response whose shape does not match
	// the request. Never retried.
	ErrInvalidResult = errors.New("invalid result")

	// ErrUnsupportedExitKind marks an exit-kind discriminant outside the
	// known values.
	ErrUnsupportedExitKind = errors.New("unsupported exit kind")

	// ErrMethodNotFound marks a function name absent from the configured
	// ABI set, a client/contract version mismatch.
	ErrMethodNotFound = errors.New("not found in ABI")

	// ErrNegativeUnused marks a simulated join that reports a used amount
	// above the requested maximum.
	ErrNegativeUnused = errors.New("used amount exceeds maximum")
)
