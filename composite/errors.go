package composite

import "errors"

var (
	// ErrInvalidTopology is returned when there are no monitors or a monitor's
	// rectangle is inconsistent with its resolution.
	ErrInvalidTopology = errors.New("invalid monitor topology")

	// ErrInvalidImage is returned for images with a zero dimension or that
	// cannot be decoded.
	ErrInvalidImage = errors.New("invalid image")

	// ErrMismatchedInputs is returned when the number of images differs from the
	// number of monitors.
	ErrMismatchedInputs = errors.New("number of images does not match number of monitors")

	// ErrInsufficientImages is returned when an orientation bucket runs out
	// before every monitor of that orientation has an image.
	ErrInsufficientImages = errors.New("not enough images")
)
