package engine

import "errors"

var (
	// ErrMissingRequiredInput indicates that weight, waist or hip was
	// absent or non-positive. The caller is expected to validate before
	// invoking the engine; this is the defensive backstop.
	ErrMissingRequiredInput = errors.New("missing required measurement")

	// ErrInvalidProfile indicates an implausible height, an unset sex,
	// or a birth date after the evaluation date.
	ErrInvalidProfile = errors.New("invalid profile")
)
