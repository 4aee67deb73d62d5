package cli

import "errors"

// ErrCodeRejected is returned by callback after the server's error has been printed.
var ErrCodeRejected = errors.New("authorization code rejected")
