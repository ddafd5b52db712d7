package grid

import "errors"

// Rejection reasons. A rejected operation leaves the Layout unchanged and
// the Layout stays usable, so callers compare with errors.Is and carry on.
var (
	ErrInvalidSize            = errors.New("grid: widget size must be positive")
	ErrOutOfBounds            = errors.New("grid: position out of bounds")
	ErrMeasurementUnavailable = errors.New("grid: measurement unavailable")
	ErrCollisionDetected      = errors.New("grid: collision detected")
	ErrWidgetNotFound         = errors.New("grid: widget not found")
	ErrUnknownType            = errors.New("grid: unknown widget type")
	ErrConfigMismatch         = errors.New("grid: config does not match widget type")
	ErrDuplicateID            = errors.New("grid: duplicate widget id")
	ErrMissingID              = errors.New("grid: widget id is required")
)
