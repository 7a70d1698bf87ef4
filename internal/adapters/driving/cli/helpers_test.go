package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codegrep/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
	"github.com/custodia-labs/codegrep/internal/core/services"
)

// mockSearchService records the last request and replays fixed pages.
type mockSearchService struct {
	mu         sync.Mutex
	pages      []*domain.SearchResult
	summary    *domain.FilterSummary
	err        error
	lastReq    driving.SearchRequest
	lastParams domain.SearchParams
}

func (m *mockSearchService) Search(_ context.Context, req driving.SearchRequest, handle driving.PageHandler) error {
	m.mu.Lock()
	m.lastReq = req
	m.mu.Unlock()

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
	m.mu.Lock()
	m.lastParams = params
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

// testEnv holds the services injected for one test.
type testEnv struct {
	search *mockSearchService
	store  *memory.ConfigStore
}

// setupTestServices injects a mock search service and a settings service
// backed by an in-memory store, and resets every flag on cleanup.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		search: &mockSearchService{},
		store:  memory.NewConfigStore(),
	}
	searchService = env.search
	settingsService = services.NewSettingsService(env.store)

	t.Cleanup(func() {
		searchService = nil
		settingsService = nil
		resetFlags(t)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return env
}

// resetFlags restores defaults since the commands are package globals.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	for _, cmd := range append(rootCmd.Commands(), rootCmd) {
		cmd.Flags().VisitAll(reset)
		cmd.PersistentFlags().VisitAll(reset)
		for _, sub := range cmd.Commands() {
			sub.Flags().VisitAll(reset)
		}
	}
}

// execute runs the root command with args and returns captured stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func page(repo, snippet string) *domain.SearchResult {
	return &domain.SearchResult{
		Count: 12,
		Hits:  []domain.Hit{{Repo: repo, Path: "main.go", Snippet: snippet}},
	}
}
