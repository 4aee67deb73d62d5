package hubapi

import "errors"

// ErrInvalidBaseURL is returned when the server URL has no scheme or host.
var ErrInvalidBaseURL = errors.New("hubapi: server url must be absolute")
