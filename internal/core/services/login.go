package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/core/ports/driven"
	"github.com/custodia-labs/hublogin/internal/core/ports/driving"
	"github.com/custodia-labs/hublogin/internal/logger"
)

// Ensure LoginService implements the interface.
var _ driving.LoginService = (*LoginService)(nil)

// LoginService forwards pasted authorization codes to the server extension.
type LoginService struct {
	hub         driven.HubAPI
	browser     driven.BrowserOpener
	window      domain.LoginWindow
	loginURL    string
	openBrowser bool
}

// LoginOption configures a LoginService.
type LoginOption func(*LoginService)

// WithDefaultLoginURL sets the login URL used when a hub response has none.
// An empty value keeps the normalized default login path.
func WithDefaultLoginURL(loginURL string) LoginOption {
	return func(s *LoginService) {
		s.loginURL = loginURL
	}
}

// WithBrowser sets whether OpenLogin launches the browser.
func WithBrowser(open bool) LoginOption {
	return func(s *LoginService) {
		s.openBrowser = open
	}
}

// NewLoginService creates a new login service.
func NewLoginService(hub driven.HubAPI, browser driven.BrowserOpener, opts ...LoginOption) *LoginService {
	s := &LoginService{
		hub:         hub,
		browser:     browser,
		window:      domain.DefaultLoginWindow(),
		openBrowser: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginURL resolves the login location for resp.
func (s *LoginService) LoginURL(resp domain.HubResponse) string {
	if resp.HasLoginURL() {
		return *resp.LoginURL
	}
	if s.loginURL != "" {
		return s.loginURL
	}
	return s.hub.NormalizeURL(domain.DefaultLoginPath)
}

// OpenLogin opens the login URL for resp in the browser.
// The URL is returned even when the browser could not be opened so callers
// can show it to the user.
func (s *LoginService) OpenLogin(_ context.Context, resp domain.HubResponse) (string, error) {
	loginURL := s.LoginURL(resp)
	logger.Debug("opening login page %s", loginURL)

	if !s.openBrowser || s.browser == nil {
		return loginURL, nil
	}
	if err := s.browser.Open(loginURL, s.window); err != nil {
		return loginURL, fmt.Errorf("open browser: %w", err)
	}
	return loginURL, nil
}

// SubmitCode sends code verbatim to the callback endpoint.
func (s *LoginService) SubmitCode(ctx context.Context, code string) error {
	query := url.Values{}
	query.Set(domain.CodeParam, code)

	logger.Debug("submitting authorization code to %s", domain.CallbackEndpoint)
	if _, err := s.hub.Request(ctx, domain.CallbackEndpoint, query); err != nil {
		if cbErr, ok := domain.AsCallbackError(err); ok {
			logger.Warn("callback rejected: %s", cbErr.Headline())
			return cbErr
		}
		logger.Warn("callback request failed: %v", err)
		return &domain.CallbackError{
			StatusText: "Request Failed",
			Details:    err.Error(),
			Err:        err,
		}
	}

	logger.Info("authorization code accepted")
	return nil
}
