package polygon

import "errors"

var (
	// ErrWindowTooSmall is returned when a window cannot hold a single cell
	// of the requested tessellation.
	ErrWindowTooSmall = errors.New("window too small to tessellate")

	// ErrInvalidParams is returned for non-positive grid, spoke or tier counts.
	ErrInvalidParams = errors.New("invalid tessellation parameters")

	// ErrNoPolygons is returned when an effect set up no polygons.
	ErrNoPolygons = errors.New("effect produced no polygons")

	// ErrProtocol reports host calls made out of the per-frame sequence.
	ErrProtocol = errors.New("frame protocol violation")
)
