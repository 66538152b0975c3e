package engine

import "errors"

var (
	// ErrValidation indicates the request failed validation; nothing was planned.
	ErrValidation = errors.New("validation failed")

	// ErrMergeSkipped indicates one or more barrel merges were skipped because
	// the barrel lost its marker. All other actions were applied.
	ErrMergeSkipped = errors.New("barrel merge skipped")
)
