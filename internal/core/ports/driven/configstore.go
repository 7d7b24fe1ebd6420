package driven

// ConfigStore holds user settings as flat dotted keys ("chunking.size").
// Values keep the type they were stored or decoded with; SettingsService
// does the conversion.
type ConfigStore interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (any, bool)

	// Set stores value under key. Persistent stores write through.
	Set(key string, value any) error

	// Unset removes key so its default applies again.
	Unset(key string) error

	// Keys returns every stored key, sorted.
	Keys() []string

	// Path returns where settings are persisted, or "" for none.
	Path() string
}
