package review

import "errors"

// ErrInvalidAction indicates an unrecognized review close action.
var ErrInvalidAction = errors.New("invalid review action")
