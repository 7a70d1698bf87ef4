package driving

import "github.com/custodia-labs/codegrep/internal/core/domain"

// SettingEntry is one row of `config show`.
type SettingEntry struct {
	Key   string
	Value string
	// FromFile is true when the value comes from the config file.
	FromFile bool
}

// SettingsService reads and updates persisted configuration.
type SettingsService interface {
	// Get returns defaults overlaid with the config file.
	Get() (*domain.Settings, error)

	// Set validates raw against key and persists the typed value.
	Set(key, raw string) error

	// Entries lists every known key with its effective value.
	Entries() ([]SettingEntry, error)

	// Path returns the config file location.
	Path() string
}
