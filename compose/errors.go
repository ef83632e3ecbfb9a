package compose

import "errors"

var (
	// ErrNotMirrorable is returned when mirroring an asset that is not
	// flagged as mirrorable.
	ErrNotMirrorable = errors.New("compose: asset is not mirrorable")

	// ErrDegenerateAxis is returned when an asset's base and forward
	// anchors coincide, leaving its orientation undefined.
	ErrDegenerateAxis = errors.New("compose: base and forward anchors coincide")

	// ErrInvalidScale is returned for a scale that is not a positive
	// finite number.
	ErrInvalidScale = errors.New("compose: scale must be positive and finite")
)
