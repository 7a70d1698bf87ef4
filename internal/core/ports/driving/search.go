package driving

import (
	"context"

	"github.com/custodia-labs/codegrep/internal/core/domain"
)

// PageHandler receives result pages in ascending page order.
// Returning an error stops the stream.
type PageHandler func(page int, res *domain.SearchResult) error

// SearchRequest is one invocation of the result pipeline.
type SearchRequest struct {
	// Params are the page-one parameters; later pages differ only in Page.
	Params domain.SearchParams

	// PageLimit caps the number of pages. Zero means all pages.
	PageLimit int
}

// SearchService provides the result pipeline to external actors.
type SearchService interface {
	// Search fetches page one, then every further page up to the limit,
	// calling handle for each page in order. It stops at the first error.
	Search(ctx context.Context, req SearchRequest, handle PageHandler) error

	// Summary fetches page one and returns its facet overview.
	Summary(ctx context.Context, params domain.SearchParams) (*domain.FilterSummary, error)
}
