package snippet

import (
	"html"
	"iter"
	"regexp"
	"slices"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/logger"
)

// leadingNumber matches the line number token at the start of a row.
var leadingNumber = regexp.MustCompile(`^[0-9]+`)

// Options controls which rows are shown and how lines are assembled.
type Options struct {
	// Context shows every content row instead of matching rows only,
	// and separates disjoint fragments with a blank line.
	Context bool

	// HideLineNumbers omits the "<number>:" prefix.
	HideLineNumbers bool
}

// Renderer converts snippet blobs into printable lines.
// A Renderer holds no mutable state and is safe for concurrent use.
type Renderer struct {
	palette domain.Palette
	opts    Options
}

// New creates a renderer using the given palette and options.
func New(palette domain.Palette, opts Options) *Renderer {
	return &Renderer{palette: palette, opts: opts}
}

// Lines returns the display lines for one snippet blob. The sequence ends
// with a single blank line, or is empty when the blob has no rows.
func (r *Renderer) Lines(blob string) iter.Seq[domain.RenderedLine] {
	return func(yield func(domain.RenderedLine) bool) {
		seen := 0
		afterContent := false
		// gap is a separator waiting for the next content line.
		gap := false

		for rw := range rows(blob, r.palette) {
			seen++
			if rw.recovered {
				logger.Debug("snippet: closed unterminated markup in row %d", seen)
			}

			if rw.separator {
				gap = r.opts.Context && afterContent
				continue
			}

			if !rw.matched && !r.opts.Context {
				continue
			}
			if gap {
				if !yield(domain.RenderedLine{}) {
					return
				}
				gap = false
			}
			if !yield(r.assemble(rw.text)) {
				return
			}
			afterContent = true
		}

		if seen > 0 {
			yield(domain.RenderedLine{})
		}
	}
}

// Render collects Lines into a slice.
func (r *Renderer) Render(blob string) []domain.RenderedLine {
	return slices.Collect(r.Lines(blob))
}

// assemble splits the row into number and text, decodes entities and
// applies the line number colour.
func (r *Renderer) assemble(text string) domain.RenderedLine {
	number := leadingNumber.FindString(text)
	if number == "" {
		logger.Debug("snippet: row without line number: %q", text)
		return domain.RenderedLine{Text: html.UnescapeString(text)}
	}

	rest := html.UnescapeString(text[len(number):])
	if r.opts.HideLineNumbers {
		return domain.RenderedLine{Number: number, Text: rest}
	}
	return domain.RenderedLine{
		Number: number,
		Text:   r.palette.LineNumber + number + r.palette.Reset + ":" + rest,
	}
}
