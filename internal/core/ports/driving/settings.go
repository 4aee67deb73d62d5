package driving

import "github.com/custodia-labs/hublogin/internal/core/domain"

// SettingsService reads and writes login client settings.
type SettingsService interface {
	// Get returns the effective settings, defaults applied.
	Get() (domain.Settings, error)

	// Set updates a single setting by key.
	Set(key, value string) error

	// Keys returns the supported setting keys.
	Keys() []string
}
