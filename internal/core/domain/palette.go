package domain

import (
	"fmt"
	"strings"
)

// Palette holds the escape sequences for each output role.
// A zero Palette disables colour entirely.
type Palette struct {
	File       string
	LineNumber string
	Match      string
	Reset      string
}

// ANSI SGR codes used by the default palette.
const (
	sgrFile       = "35"
	sgrLineNumber = "32"
	sgrMatch      = "31;1"
	sgrReset      = "0"
)

// DefaultPalette returns the colour palette used on capable terminals.
func DefaultPalette() Palette {
	return Palette{
		File:       sgr(sgrFile),
		LineNumber: sgr(sgrLineNumber),
		Match:      sgr(sgrMatch),
		Reset:      sgr(sgrReset),
	}
}

// NoColor returns a palette with every role set to the empty string.
func NoColor() Palette {
	return Palette{}
}

// Enabled reports whether any role emits an escape sequence.
func (p Palette) Enabled() bool {
	return p != Palette{}
}

func sgr(code string) string {
	return "\x1b[" + code + "m"
}

// ColorMode selects how the palette is chosen.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a --color value. The single-letter aliases
// A, a and n select auto, always and never.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "A":
		return ColorAuto, nil
	case "a":
		return ColorAlways, nil
	case "n":
		return ColorNever, nil
	}
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColorMode, s)
}

// String returns the mode's canonical name.
func (m ColorMode) String() string {
	return string(m)
}
