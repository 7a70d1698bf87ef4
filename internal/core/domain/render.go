package domain

// RenderedLine is one printable line derived from a snippet.
type RenderedLine struct {
	// Number is the source line number, or empty for blank separator
	// lines and rows without a leading number.
	Number string

	// Text is the final display text with escape sequences applied.
	Text string
}

// HasNumber reports whether the line carries a source line number.
func (l RenderedLine) HasNumber() bool {
	return l.Number != ""
}
