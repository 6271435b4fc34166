package normalize

import "errors"

// ErrMalformed reports a response body whose top-level shape is unusable.
var ErrMalformed = errors.New("malformed response")
