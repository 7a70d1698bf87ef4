package driven

import (
	"context"

	"github.com/custodia-labs/codegrep/internal/core/domain"
)

// SearchClient performs one round trip to the remote code-search service.
// Backed by the grep.app HTTP API.
type SearchClient interface {
	// Search fetches the page described by params.
	// Transport failures, non-2xx responses and undecodable bodies
	// are all returned as errors; no retries are attempted.
	Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error)
}
