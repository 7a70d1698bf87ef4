package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driven"
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService overlays the config file on the built-in defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves the effective settings. Values of the wrong type or out
// of range fall back to the default.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	return &domain.Settings{
		Search: domain.SearchSettings{
			Pages:           s.getInt(domain.KeySearchPages, d.Search.Pages, 0),
			Jobs:            s.getInt(domain.KeySearchJobs, d.Search.Jobs, 1),
			CaseInsensitive: s.getBool(domain.KeySearchCaseInsensitive, d.Search.CaseInsensitive),
			Languages:       s.getStrings(domain.KeySearchLanguages, d.Search.Languages),
		},
		Output: domain.OutputSettings{
			Color:       s.getColor(d.Output.Color),
			Context:     s.getBool(domain.KeyOutputContext, d.Output.Context),
			LineNumbers: s.getBool(domain.KeyOutputLineNumbers, d.Output.LineNumbers),
			Host:        s.getString(domain.KeyOutputHost, d.Output.Host),
		},
		Client: domain.ClientSettings{
			Endpoint: s.getString(domain.KeyClientEndpoint, d.Client.Endpoint),
			Timeout:  time.Duration(s.getInt(domain.KeyClientTimeout, int(d.Client.Timeout/time.Second), 1)) * time.Second,
			Rate:     s.getFloat(domain.KeyClientRate, d.Client.Rate),
			Burst:    s.getInt(domain.KeyClientBurst, d.Client.Burst, 1),
		},
	}, nil
}

// Set validates raw for key and persists the typed value.
func (s *SettingsService) Set(key, raw string) error {
	value, err := domain.ParseSettingValue(key, raw)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Entries lists every known key in display order.
func (s *SettingsService) Entries() ([]driving.SettingEntry, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}

	keys := domain.SettingKeys()
	entries := make([]driving.SettingEntry, 0, len(keys))
	for _, key := range keys {
		value, err := settings.Value(key)
		if err != nil {
			return nil, err
		}
		_, fromFile := s.configStore.Get(key)
		entries = append(entries, driving.SettingEntry{Key: key, Value: value, FromFile: fromFile})
	}
	return entries, nil
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats a present zero as a value, since search.pages = 0 means all.
func (s *SettingsService) getInt(key string, defaultVal, minVal int) int {
	raw, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val == 0 && !isZeroNumber(raw) {
		return defaultVal
	}
	if val < minVal {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	raw, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	if _, ok := raw.(bool); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getColor(defaultVal domain.ColorMode) domain.ColorMode {
	val := s.configStore.GetString(domain.KeyOutputColor)
	if val == "" {
		return defaultVal
	}
	mode, err := domain.ParseColorMode(val)
	if err != nil {
		return defaultVal
	}
	return mode
}

func isZeroNumber(v any) bool {
	switch n := v.(type) {
	case int:
		return n == 0
	case int64:
		return n == 0
	case float64:
		return n == 0
	}
	return false
}
