package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/codegrep/internal/core/domain"
)

// mockSearchClient implements driven.SearchClient for testing.
// Each page result records its page number in TimeMS.
type mockSearchClient struct {
	count   int
	hits    int
	errs    map[int]error
	delay   func(page int) time.Duration
	onFetch func(page int)

	mu     sync.Mutex
	calls  []domain.SearchParams
	active atomic.Int32
	peak   atomic.Int32
}

func (m *mockSearchClient) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, params)
	m.mu.Unlock()

	n := m.active.Add(1)
	defer m.active.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if m.onFetch != nil {
		m.onFetch(params.Page)
	}

	if m.delay != nil {
		select {
		case <-time.After(m.delay(params.Page)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := m.errs[params.Page]; err != nil {
		return nil, err
	}

	hits := make([]domain.Hit, m.hits)
	for i := range hits {
		hits[i] = domain.Hit{
			Repo:    "owner/repo",
			Path:    fmt.Sprintf("page%d/file%d.go", params.Page, i),
			Snippet: `<tr><td>1</td><td><mark>x</mark></td></tr>`,
		}
	}
	return &domain.SearchResult{
		Count:  m.count,
		Hits:   hits,
		Total:  m.count,
		TimeMS: int64(params.Page),
	}, nil
}

func (m *mockSearchClient) pagesRequested() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages := make([]int, len(m.calls))
	for i, c := range m.calls {
		pages[i] = c.Page
	}
	return pages
}
