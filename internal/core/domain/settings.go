package domain

// DefaultServerURL is the base URL of a local Jupyter server.
const DefaultServerURL = "http://localhost:8888/"

// Settings holds the configuration of the login client.
type Settings struct {
	// ServerURL is the base URL of the Jupyter server hosting the extension.
	ServerURL string
	// Token authenticates requests against the Jupyter server.
	Token string
	// XSRFToken is sent as X-XSRFToken when the server enforces XSRF checks.
	XSRFToken string
	// LoginURL is a default login URL override for hub responses without one.
	LoginURL string
	// OpenBrowser launches the system browser on "Log In to Globus".
	OpenBrowser bool
}

// DefaultSettings returns settings for a local Jupyter server.
func DefaultSettings() Settings {
	return Settings{
		ServerURL:   DefaultServerURL,
		OpenBrowser: true,
	}
}
