package activity

import "errors"

var (
	// ErrInvalidInput is returned for nil or untyped entries.
	ErrInvalidInput = errors.New("invalid activity input")
)
