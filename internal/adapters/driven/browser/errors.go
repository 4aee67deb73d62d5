package browser

import "errors"

// ErrUnsupportedScheme is returned for URLs that are not http or https.
var ErrUnsupportedScheme = errors.New("browser: only http and https URLs can be opened")
