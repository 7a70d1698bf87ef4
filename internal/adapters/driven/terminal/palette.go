// Package terminal decides whether output is coloured.
package terminal

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/custodia-labs/codegrep/internal/core/domain"
)

// blacklist lists TERM values that never get colour in auto mode. Entries
// are lower case; TERM is compared case-insensitively.
var blacklist = map[string]struct{}{
	"dumb": {},
}

// Resolve picks the palette for mode. In auto mode colour requires a
// terminal, a TERM outside the blacklist and at least eight colours.
func Resolve(mode domain.ColorMode, tty bool, termName string, profile termenv.Profile) domain.Palette {
	switch mode {
	case domain.ColorAlways:
		return domain.DefaultPalette()
	case domain.ColorNever:
		return domain.NoColor()
	}

	if !tty {
		return domain.NoColor()
	}
	if _, bad := blacklist[strings.ToLower(strings.TrimSpace(termName))]; bad {
		return domain.NoColor()
	}
	if profile == termenv.Ascii {
		return domain.NoColor()
	}
	return domain.DefaultPalette()
}

// Detect resolves the palette for output written to f.
func Detect(mode domain.ColorMode, f *os.File) domain.Palette {
	if mode != domain.ColorAuto {
		return Resolve(mode, false, "", termenv.Ascii)
	}
	tty := term.IsTerminal(int(f.Fd()))
	profile := termenv.Ascii
	if tty {
		profile = termenv.NewOutput(f).ColorProfile()
	}
	return Resolve(mode, tty, os.Getenv("TERM"), profile)
}
