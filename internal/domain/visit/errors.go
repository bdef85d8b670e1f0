package visit

import "errors"

// ErrInvalidMode indicates an unrecognized visit mode.
var ErrInvalidMode = errors.New("invalid visit mode")
