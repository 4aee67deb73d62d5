package tui

import "errors"

// ErrMissingLoginService is returned when the login service is not provided.
var ErrMissingLoginService = errors.New("tui: login service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
