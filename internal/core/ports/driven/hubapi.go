package driven

import (
	"context"
	"net/url"
)

// HubAPI issues requests against the Globus JupyterLab server extension.
type HubAPI interface {
	// Request calls endpoint under the extension namespace with the given query.
	// A rejected request returns a *domain.CallbackError.
	Request(ctx context.Context, endpoint string, query url.Values) ([]byte, error)

	// NormalizeURL joins a server-relative path to the server base URL.
	NormalizeURL(path string) string
}
