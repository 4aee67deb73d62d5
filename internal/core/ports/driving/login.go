package driving

import (
	"context"

	"github.com/custodia-labs/hublogin/internal/core/domain"
)

// LoginService drives the manual authorization code flow.
type LoginService interface {
	// LoginURL resolves where the user logs in: the response's own login URL
	// when present, otherwise the normalized default login path.
	LoginURL(resp domain.HubResponse) string

	// OpenLogin opens the resolved login URL and returns it.
	OpenLogin(ctx context.Context, resp domain.HubResponse) (string, error)

	// SubmitCode sends the authorization code to the callback endpoint.
	// Failures are returned as *domain.CallbackError.
	SubmitCode(ctx context.Context, code string) error
}
