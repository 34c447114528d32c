package interview

import "errors"

// ErrInvalidInput is returned when a caller-provided value cannot start or
// advance the session. The session state is left unchanged and the caller
// must re-prompt.
var ErrInvalidInput = errors.New("invalid input")
