package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driven"
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
	"github.com/custodia-labs/codegrep/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchOptions tunes the pipeline.
type SearchOptions struct {
	// Concurrency is the number of page requests kept in flight.
	Concurrency int

	// PageSize is the number of hits per page on the service.
	PageSize int
}

// SearchService runs the result pipeline: page one synchronously, then
// the remaining pages through a Paginator.
type SearchService struct {
	client    driven.SearchClient
	paginator *Paginator
	pageSize  int
}

// NewSearchService creates a new search service.
func NewSearchService(client driven.SearchClient, opts SearchOptions) *SearchService {
	p := NewPaginator(client, opts.Concurrency, opts.PageSize)
	return &SearchService{
		client:    client,
		paginator: p,
		pageSize:  p.pageSize,
	}
}

// Search fetches page one and hands it to handle, then streams the
// following pages in order. A first page without hits ends the search.
func (s *SearchService) Search(ctx context.Context, req driving.SearchRequest, handle driving.PageHandler) error {
	logger.Section("Search")

	first, err := s.firstPage(ctx, req.Params)
	if err != nil {
		return err
	}
	if len(first.Hits) == 0 {
		logger.Info("No hits for %q", req.Params.Query)
		return nil
	}

	if err := handle(1, first); err != nil {
		return err
	}

	page := 1
	for res, err := range s.paginator.Pages(ctx, first, req.Params.WithPage(1), req.PageLimit) {
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		page++
		if err := handle(page, res); err != nil {
			return err
		}
	}
	return nil
}

// Summary fetches page one and returns its facets and total page count.
func (s *SearchService) Summary(ctx context.Context, params domain.SearchParams) (*domain.FilterSummary, error) {
	logger.Section("Filter Summary")

	first, err := s.firstPage(ctx, params)
	if err != nil {
		return nil, err
	}
	summary := domain.NewFilterSummary(first, s.pageSize)
	return &summary, nil
}

func (s *SearchService) firstPage(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	if s.client == nil {
		return nil, domain.ErrSearchUnavailable
	}

	params = params.WithPage(1)
	if err := params.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Query: %q case=%t regex=%t words=%t langs=%v repo=%q path=%q",
		params.Query, params.CaseSensitive, params.Regex, params.WholeWords,
		params.Languages, params.Repo, params.Path)

	res, err := s.client.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	logger.Info("Page 1: %d hits of %d (partial=%t, %dms)", len(res.Hits), res.Count, res.Partial, res.TimeMS)
	return res, nil
}
