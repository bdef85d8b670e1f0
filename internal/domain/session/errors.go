package session

import "errors"

var (
	// ErrInvalidTab indicates an unknown dashboard tab.
	ErrInvalidTab = errors.New("invalid tab")
)
