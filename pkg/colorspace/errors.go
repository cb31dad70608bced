package colorspace

import "errors"

// Sentinel causes for this module's error taxonomy. Public entry points
// across this module wrap one of these with fmt.Errorf's %w so callers can
// errors.Is against a stable cause regardless of which package raised it.
var (
	// ErrInvalidArgument marks eager input validation failures: out-of-range
	// dimensions, non-positive durations, a zero target palette size, or a
	// nil/empty input. Public entry points must fail with this before
	// touching I/O.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedInput marks conditions a quantizer or ditherer cannot
	// locally repair: an unsupported pixel format, a failed eigendecomposition,
	// or an empty histogram.
	ErrMalformedInput = errors.New("malformed input")

	// ErrIOFailure marks a write error from the GIF writer or driver; it
	// surfaces the underlying OS error and triggers WIP-token rollback.
	ErrIOFailure = errors.New("io failure")

	// ErrInternalInvariant marks a bug-class condition (e.g. palette padding
	// failed to reach the requested size). Callers that hit this should
	// treat it as a defect, not a recoverable error; the package-level
	// functions that can detect it panic instead of returning it.
	ErrInternalInvariant = errors.New("internal invariant violated")
)
