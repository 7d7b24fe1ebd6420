package driving

import "github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults overlaid by the
	// config file and then by environment overrides.
	Get() (domain.Settings, error)

	// Set validates and persists a single config key.
	Set(key, value string) error

	// Keys returns every supported config key.
	Keys() []string

	// Values returns the effective value of every key, formatted as
	// Set accepts it.
	Values() (map[string]string, error)

	// Path returns the config file location.
	Path() string
}
