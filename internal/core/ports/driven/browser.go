package driven

import "github.com/custodia-labs/hublogin/internal/core/domain"

// BrowserOpener opens a URL for the user.
type BrowserOpener interface {
	Open(rawURL string, window domain.LoginWindow) error
}
