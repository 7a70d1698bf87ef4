package mcp

import (
	"context"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	pages   []*domain.SearchResult
	summary *domain.FilterSummary
	err     error

	lastReq    driving.SearchRequest
	lastParams domain.SearchParams
}

func (m *mockSearchService) Search(
	_ context.Context,
	req driving.SearchRequest,
	handle driving.PageHandler,
) error {
	m.lastReq = req
	if m.err != nil {
		return m.err
	}
	for i, page := range m.pages {
		if req.PageLimit > 0 && i >= req.PageLimit {
			break
		}
		if err := handle(i+1, page); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSearchService) Summary(_ context.Context, params domain.SearchParams) (*domain.FilterSummary, error) {
	m.lastParams = params
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	entries  []driving.SettingEntry
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Entries() ([]driving.SettingEntry, error) {
	return m.entries, m.err
}

func (m *mockSettingsService) Path() string {
	return ":mock:"
}
