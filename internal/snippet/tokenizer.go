package snippet

import (
	"bytes"
	"io"
	"iter"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/codegrep/internal/core/domain"
)

// scanState is the position of the tokenizer relative to rows and spans.
type scanState int

const (
	outsideRow scanState = iota
	insideRow
	insideHighlight
)

// row is one extracted table row, tags stripped and highlight markers
// replaced by palette escapes. Entities are still encoded.
type row struct {
	text      string
	matched   bool
	separator bool

	// recovered is set when the row needed an implicit close.
	recovered bool
}

// scanner walks the token stream of one snippet.
type scanner struct {
	palette domain.Palette
	state   scanState
	buf     strings.Builder
	cur     row

	// cells counts open <td> elements in the current row.
	cells int
}

// rows yields the rows of blob in document order.
func rows(blob string, palette domain.Palette) iter.Seq[row] {
	return func(yield func(row) bool) {
		s := &scanner{palette: palette}
		z := html.NewTokenizer(strings.NewReader(blob))

		for {
			switch z.Next() {
			case html.ErrorToken:
				// io.EOF is the only error a strings.Reader produces.
				if z.Err() == io.EOF && s.state != outsideRow {
					yield(s.finish(true))
				}
				return

			case html.StartTagToken, html.SelfClosingTagToken:
				name, hasAttr := z.TagName()
				jump := hasAttr && hasJumpClass(z)
				switch string(name) {
				case "tr":
					if s.state != outsideRow {
						if !yield(s.finish(true)) {
							return
						}
					}
					s.state = insideRow
				case "td":
					if s.state != outsideRow {
						s.cells++
					}
				case "mark":
					s.openHighlight()
				}
				if jump && s.state != outsideRow {
					s.cur.separator = true
				}

			case html.EndTagToken:
				name, _ := z.TagName()
				switch string(name) {
				case "mark":
					s.closeHighlight()
				case "td":
					if s.cells > 0 {
						s.cells--
					}
				case "tr":
					if s.state != outsideRow {
						if !yield(s.finish(false)) {
							return
						}
					}
				}

			case html.TextToken:
				s.text(z.Raw())
			}
		}
	}
}

// text buffers raw row text. Whitespace between row and cell tags is
// markup formatting, not code, and is dropped.
func (s *scanner) text(raw []byte) {
	if s.state == outsideRow {
		return
	}
	if s.cells == 0 && len(bytes.TrimSpace(raw)) == 0 {
		return
	}
	s.buf.Write(raw)
}

// openHighlight starts a match span. Spans never nest, so an open
// marker inside a span is dropped.
func (s *scanner) openHighlight() {
	if s.state != insideRow {
		return
	}
	s.buf.WriteString(s.palette.Match)
	s.cur.matched = true
	s.state = insideHighlight
}

// closeHighlight ends a match span. Stray close markers are dropped.
func (s *scanner) closeHighlight() {
	if s.state != insideHighlight {
		return
	}
	s.buf.WriteString(s.palette.Reset)
	s.state = insideRow
}

// finish closes the current row and resets the scanner. implicit is set
// when the row ended without its </tr>.
func (s *scanner) finish(implicit bool) row {
	if s.state == insideHighlight {
		s.buf.WriteString(s.palette.Reset)
		implicit = true
	}
	r := s.cur
	r.text = s.buf.String()
	r.recovered = implicit

	s.cur = row{}
	s.cells = 0
	s.buf.Reset()
	s.state = outsideRow
	return r
}

// hasJumpClass reports whether the current tag carries class "jump".
func hasJumpClass(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == "jump" {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}
