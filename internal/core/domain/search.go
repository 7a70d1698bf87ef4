package domain

import (
	"fmt"
	"slices"
	"strings"
)

// SearchParams describes a single request to the code-search service.
// A value is never mutated after construction; per-page copies are
// derived with WithPage.
type SearchParams struct {
	// Page is the 1-based result page.
	Page int

	// Query is the search text or pattern.
	Query string

	// CaseSensitive matches letter case exactly.
	CaseSensitive bool

	// Regex interprets Query as a regular expression.
	Regex bool

	// WholeWords only matches Query on word boundaries.
	WholeWords bool

	// Languages filters results to the given languages, in order.
	Languages []string

	// Repo is an optional repository pattern filter. Empty means unset.
	Repo string

	// Path is an optional file path pattern filter. Empty means unset.
	Path string
}

// WithPage returns a copy of p requesting the given page.
// The language slice is cloned so the copy shares no mutable state.
func (p SearchParams) WithPage(page int) SearchParams {
	c := p
	c.Page = page
	c.Languages = slices.Clone(p.Languages)
	return c
}

// Validate reports whether the parameters can be sent to the service.
func (p SearchParams) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return ErrEmptyQuery
	}
	if p.Page < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, p.Page)
	}
	return nil
}

// QueryFlags are the user-facing switches that shape a request.
type QueryFlags struct {
	CaseInsensitive bool
	// Text disables regular expression matching.
	Text      bool
	Words     bool
	Languages []string
	Repo      string
	Path      string
}

// Params builds first-page parameters for query. Whole-word matching
// implies text mode.
func (f QueryFlags) Params(query string) SearchParams {
	return SearchParams{
		Page:          1,
		Query:         query,
		CaseSensitive: !f.CaseInsensitive,
		Regex:         !f.Text && !f.Words,
		WholeWords:    f.Words,
		Languages:     slices.Clone(f.Languages),
		Repo:          f.Repo,
		Path:          f.Path,
	}
}

// Bucket is one facet entry: a value and the number of hits it carries.
type Bucket struct {
	Value string
	Count int
}

// Hit is one matched file location.
type Hit struct {
	// Repo is the owning repository, e.g. "golang/go".
	Repo string

	// Path is the file path inside the repository.
	Path string

	// Snippet is the raw markup excerpt with highlight spans.
	Snippet string
}

// SearchResult is one page returned by the service.
type SearchResult struct {
	// Count is the total number of matches reported by the facets.
	// Page counts are derived from it.
	Count int

	// Languages, Repositories and Paths are facet breakdowns in service order.
	Languages    []Bucket
	Repositories []Bucket
	Paths        []Bucket

	// Hits are the matches on this page.
	Hits []Hit

	// Total is the hit total reported alongside the hit list.
	Total int

	// Partial is set when the service returned an incomplete result set.
	Partial bool

	// TimeMS is the server-side query time in milliseconds.
	TimeMS int64
}

// FilterSummary is the facet overview printed in filter mode.
type FilterSummary struct {
	Languages    []Bucket
	Repositories []Bucket
	Paths        []Bucket

	// TotalPages is the number of pages implied by the result count.
	TotalPages int
}

// NewFilterSummary builds a summary from the first page of a result.
func NewFilterSummary(res *SearchResult, pageSize int) FilterSummary {
	return FilterSummary{
		Languages:    res.Languages,
		Repositories: res.Repositories,
		Paths:        res.Paths,
		TotalPages:   TotalPages(res.Count, pageSize),
	}
}
