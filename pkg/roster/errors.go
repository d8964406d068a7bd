package roster

import "errors"

var (
	// ErrInvalidPeriod is returned for a malformed target year/month.
	ErrInvalidPeriod = errors.New("invalid target period")

	// ErrContinuityUnknown means the engine cannot safely assume a clean
	// start and needs manually reconstructed history from the caller.
	// Generation is deferred, not failed.
	ErrContinuityUnknown = errors.New("continuity state unknown, manual history required")

	// ErrMissingContinuityInput means the caller proceeded without
	// resolving ErrContinuityUnknown, or supplied an unusable history grid.
	ErrMissingContinuityInput = errors.New("manual continuity input missing or incomplete")
)
