package services

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/hublogin/internal/core/domain"
	"github.com/custodia-labs/hublogin/internal/core/ports/driven"
	"github.com/custodia-labs/hublogin/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyServerURL   = "server.url"
	KeyServerToken = "server.token"
	KeyXSRFToken   = "server.xsrf_token"
	KeyLoginURL    = "login.url"
	KeyOpenBrowser = "login.open_browser"
)

// SettingsService manages login client settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings with defaults applied.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	return domain.Settings{
		ServerURL:   s.getString(KeyServerURL, defaults.ServerURL),
		Token:       s.configStore.GetString(KeyServerToken),
		XSRFToken:   s.configStore.GetString(KeyXSRFToken),
		LoginURL:    s.configStore.GetString(KeyLoginURL),
		OpenBrowser: s.getBool(KeyOpenBrowser, defaults.OpenBrowser),
	}, nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case KeyServerURL, KeyLoginURL:
		if value != "" {
			if err := validateURL(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		return s.save(key, value)
	case KeyServerToken, KeyXSRFToken:
		return s.save(key, value)
	case KeyOpenBrowser:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w: expected true or false", key, domain.ErrInvalidInput)
		}
		return s.save(key, b)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Keys returns the supported setting keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyServerURL, KeyServerToken, KeyXSRFToken, KeyLoginURL, KeyOpenBrowser}
}

func (s *SettingsService) save(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: URL must use http or https", domain.ErrInvalidInput)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: URL has no host", domain.ErrInvalidInput)
	}
	return nil
}
