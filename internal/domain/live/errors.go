package live

import "errors"

// ErrInvalidCue indicates a script entry without a positive second or text.
var ErrInvalidCue = errors.New("invalid script cue")
