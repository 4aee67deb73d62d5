package domain

// ExtensionNamespace is the URL namespace of the Globus JupyterLab server extension.
const ExtensionNamespace = "globus-jupyterlab"

// DefaultLoginPath is the server-relative login path used when the hub
// response does not carry its own login URL.
const DefaultLoginPath = ExtensionNamespace + "/login"

// CallbackEndpoint is the extension endpoint that accepts a pasted authorization code.
const CallbackEndpoint = "oauth_callback_manual"

// CodeParam is the query parameter carrying the authorization code.
const CodeParam = "code"

// HubResponse describes how the login flow was triggered.
// Both fields are optional; nil means absent, which differs from empty.
type HubResponse struct {
	// LoginURL overrides the default login location.
	LoginURL *string `json:"login_url,omitempty"`
	// Details is error text from a previous attempt, shown on request.
	Details *string `json:"details,omitempty"`
}

// HasLoginURL reports whether the response carries a login URL override.
func (r HubResponse) HasLoginURL() bool {
	return r.LoginURL != nil
}

// HasDetails reports whether the response carries details text.
func (r HubResponse) HasDetails() bool {
	return r.Details != nil
}

// LoginWindow names the window the external login page is opened in.
type LoginWindow struct {
	Name   string
	Width  int
	Height int
}

// DefaultLoginWindow returns the window used for the Globus login page.
func DefaultLoginWindow() LoginWindow {
	return LoginWindow{
		Name:   "Globus Login",
		Width:  800,
		Height: 600,
	}
}
