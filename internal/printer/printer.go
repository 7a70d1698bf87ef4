// Package printer writes search results to an output stream: a header per
// hit followed by its rendered snippet, or the facet overview in filter mode.
package printer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/snippet"
)

// DefaultHost is the code host that hit links point to.
const DefaultHost = "github.com"

// Printer writes result pages. It is not safe for concurrent use; the
// pipeline calls it from a single goroutine in page order.
type Printer struct {
	w        io.Writer
	palette  domain.Palette
	renderer *snippet.Renderer
	host     string
}

// New creates a printer writing to w.
// An empty host falls back to DefaultHost.
func New(w io.Writer, palette domain.Palette, renderer *snippet.Renderer, host string) *Printer {
	if host == "" {
		host = DefaultHost
	}
	return &Printer{
		w:        w,
		palette:  palette,
		renderer: renderer,
		host:     host,
	}
}

// PrintPage writes every hit of one page. A page without hits writes nothing.
func (p *Printer) PrintPage(res *domain.SearchResult) error {
	if res == nil || len(res.Hits) == 0 {
		return nil
	}

	bw := bufio.NewWriter(p.w)
	for _, hit := range res.Hits {
		fmt.Fprintf(bw, "%s%s%s\n", p.palette.File, p.URL(hit), p.palette.Reset)
		for line := range p.renderer.Lines(hit.Snippet) {
			bw.WriteString(line.Text)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// URL returns the browsable location of a hit.
func (p *Printer) URL(hit domain.Hit) string {
	return "https://" + p.host + "/" + hit.Repo + "/blob/master/" + hit.Path
}

// PrintSummary writes the facet overview: languages on one line, then
// repository and path tables, then the total page count.
func (p *Printer) PrintSummary(s *domain.FilterSummary) error {
	bw := bufio.NewWriter(p.w)

	langs := make([]string, len(s.Languages))
	for i, b := range s.Languages {
		langs[i] = fmt.Sprintf("%s: %d", b.Value, b.Count)
	}
	fmt.Fprintf(bw, "languages: [%s]\n", strings.Join(langs, ", "))

	writeBuckets(bw, "repo", s.Repositories)
	writeBuckets(bw, "path", s.Paths)

	fmt.Fprintf(bw, "\npages: %d\n", s.TotalPages)
	return bw.Flush()
}

func writeBuckets(w io.Writer, title string, buckets []domain.Bucket) {
	fmt.Fprintf(w, "\nresults  %s\n", title)
	for _, b := range buckets {
		fmt.Fprintf(w, "%7d  %s\n", b.Count, b.Value)
	}
}
