package services

import (
	"context"
	"fmt"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driven"
	"github.com/custodia-labs/codegrep/internal/logger"
)

// Paginator fetches the pages after page one with a fixed number of
// concurrent requests and delivers them in page order.
type Paginator struct {
	client   driven.SearchClient
	width    int
	pageSize int
}

// NewPaginator creates a paginator. Non-positive width or page size
// fall back to the domain defaults.
func NewPaginator(client driven.SearchClient, width, pageSize int) *Paginator {
	if width <= 0 {
		width = domain.DefaultConcurrency
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Paginator{client: client, width: width, pageSize: pageSize}
}

// pageOutcome is the result of one page fetch.
type pageOutcome struct {
	res *domain.SearchResult
	err error
}

// Pages yields pages 2..last in ascending order, where last is derived
// from the first page's count and limit (zero means all pages).
// The first failed fetch ends the sequence with that error, and nothing
// after it is yielded. Stopping the iteration early cancels in-flight work.
func (p *Paginator) Pages(
	ctx context.Context, first *domain.SearchResult, base domain.SearchParams, limit int,
) iter.Seq2[*domain.SearchResult, error] {
	return func(yield func(*domain.SearchResult, error) bool) {
		last := domain.LastPage(first.Count, p.pageSize, limit)
		logger.Debug("Pagination: count=%d page_size=%d limit=%d last_page=%d",
			first.Count, p.pageSize, limit, last)
		if last < 2 {
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// slots[i] receives exactly one outcome for page i+2.
		slots := make([]chan pageOutcome, last-1)
		for i := range slots {
			slots[i] = make(chan pageOutcome, 1)
		}

		g, gctx := errgroup.WithContext(ctx)
		tasks := make(chan int)

		g.Go(func() error {
			defer close(tasks)
			for page := 2; page <= last; page++ {
				select {
				case tasks <- page:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})

		for range min(p.width, len(slots)) {
			g.Go(func() error {
				for page := range tasks {
					res, err := p.fetch(gctx, base, page)
					slots[page-2] <- pageOutcome{res: res, err: err}
					if err != nil {
						return err
					}
				}
				return nil
			})
		}

		for i, slot := range slots {
			var out pageOutcome
			select {
			case out = <-slot:
			case <-gctx.Done():
				// Some fetch failed or the caller cancelled.
				cancel()
				yield(nil, firstError(ctx, g))
				return
			}

			if out.err != nil {
				cancel()
				yield(nil, firstError(ctx, g))
				return
			}
			if !yield(out.res, nil) {
				logger.Debug("Pagination: consumer stopped after page %d", i+2)
				cancel()
				_ = g.Wait()
				return
			}
		}

		_ = g.Wait()
	}
}

// fetch requests one page.
func (p *Paginator) fetch(ctx context.Context, base domain.SearchParams, page int) (*domain.SearchResult, error) {
	start := time.Now()
	res, err := p.client.Search(ctx, base.WithPage(page))
	if err != nil {
		logger.Warn("Pagination: page %d failed: %v", page, err)
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	logger.Since(start, "Pagination: fetched page %d with %d hits", page, len(res.Hits))
	return res, nil
}

// firstError waits for the group and returns the error that stopped it.
func firstError(ctx context.Context, g *errgroup.Group) error {
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
