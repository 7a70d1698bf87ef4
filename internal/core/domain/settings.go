package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config keys read by codegrep.
const (
	KeySearchPages           = "search.pages"
	KeySearchJobs            = "search.jobs"
	KeySearchCaseInsensitive = "search.case_insensitive"
	KeySearchLanguages       = "search.languages"
	KeyOutputColor           = "output.color"
	KeyOutputContext         = "output.context"
	KeyOutputLineNumbers     = "output.line_numbers"
	KeyOutputHost            = "output.host"
	KeyClientEndpoint        = "client.endpoint"
	KeyClientTimeout         = "client.timeout"
	KeyClientRate            = "client.rate"
	KeyClientBurst           = "client.burst"
)

// Settings is the effective configuration after defaults and the config
// file have been merged.
type Settings struct {
	Search SearchSettings
	Output OutputSettings
	Client ClientSettings
}

// SearchSettings controls what is asked of the service.
type SearchSettings struct {
	// Pages is the page limit. Zero fetches every page.
	Pages           int
	Jobs            int
	CaseInsensitive bool
	Languages       []string
}

// OutputSettings controls how results are printed.
type OutputSettings struct {
	Color       ColorMode
	Context     bool
	LineNumbers bool
	Host        string
}

// ClientSettings configures the HTTP client.
type ClientSettings struct {
	Endpoint string
	Timeout  time.Duration
	Rate     float64
	Burst    int
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			Pages: DefaultPageLimit,
			Jobs:  DefaultConcurrency,
		},
		Output: OutputSettings{
			Color:       ColorAuto,
			LineNumbers: true,
			Host:        "github.com",
		},
		Client: ClientSettings{
			Endpoint: "https://grep.app/api/search",
			Timeout:  30 * time.Second,
			Rate:     10,
			Burst:    5,
		},
	}
}

// Value returns the setting stored under key, formatted for display.
func (s Settings) Value(key string) (string, error) {
	switch key {
	case KeySearchPages:
		return strconv.Itoa(s.Search.Pages), nil
	case KeySearchJobs:
		return strconv.Itoa(s.Search.Jobs), nil
	case KeySearchCaseInsensitive:
		return strconv.FormatBool(s.Search.CaseInsensitive), nil
	case KeySearchLanguages:
		return strings.Join(s.Search.Languages, ","), nil
	case KeyOutputColor:
		return s.Output.Color.String(), nil
	case KeyOutputContext:
		return strconv.FormatBool(s.Output.Context), nil
	case KeyOutputLineNumbers:
		return strconv.FormatBool(s.Output.LineNumbers), nil
	case KeyOutputHost:
		return s.Output.Host, nil
	case KeyClientEndpoint:
		return s.Client.Endpoint, nil
	case KeyClientTimeout:
		return strconv.Itoa(int(s.Client.Timeout / time.Second)), nil
	case KeyClientRate:
		return strconv.FormatFloat(s.Client.Rate, 'g', -1, 64), nil
	case KeyClientBurst:
		return strconv.Itoa(s.Client.Burst), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
}

// settingKind is the storage type of a config key.
type settingKind int

const (
	kindInt settingKind = iota
	kindBool
	kindString
	kindStrings
	kindFloat
	kindColor
)

type settingDef struct {
	key  string
	kind settingKind
	min  int
}

// settingDefs is ordered as `config show` prints it.
var settingDefs = []settingDef{
	{key: KeySearchPages, kind: kindInt, min: 0},
	{key: KeySearchJobs, kind: kindInt, min: 1},
	{key: KeySearchCaseInsensitive, kind: kindBool},
	{key: KeySearchLanguages, kind: kindStrings},
	{key: KeyOutputColor, kind: kindColor},
	{key: KeyOutputContext, kind: kindBool},
	{key: KeyOutputLineNumbers, kind: kindBool},
	{key: KeyOutputHost, kind: kindString},
	{key: KeyClientEndpoint, kind: kindString},
	{key: KeyClientTimeout, kind: kindInt, min: 1},
	{key: KeyClientRate, kind: kindFloat},
	{key: KeyClientBurst, kind: kindInt, min: 1},
}

// SettingKeys lists every known config key.
func SettingKeys() []string {
	keys := make([]string, len(settingDefs))
	for i, def := range settingDefs {
		keys[i] = def.key
	}
	return keys
}

// ParseSettingValue converts a raw command-line value into the typed
// value stored under key.
func ParseSettingValue(key, raw string) (any, error) {
	def, ok := lookupSetting(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	raw = strings.TrimSpace(raw)

	switch def.kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s wants an integer, got %q", ErrInvalidInput, key, raw)
		}
		if n < def.min {
			return nil, fmt.Errorf("%w: %s must be at least %d", ErrInvalidInput, key, def.min)
		}
		return n, nil
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s wants true or false, got %q", ErrInvalidInput, key, raw)
		}
		return b, nil
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%w: %s wants a positive number, got %q", ErrInvalidInput, key, raw)
		}
		return f, nil
	case kindStrings:
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case kindColor:
		mode, err := ParseColorMode(raw)
		if err != nil {
			return nil, err
		}
		return mode.String(), nil
	}
	return raw, nil
}

func lookupSetting(key string) (settingDef, bool) {
	for _, def := range settingDefs {
		if def.key == key {
			return def, true
		}
	}
	return settingDef{}, false
}
