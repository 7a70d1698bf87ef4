package grepapp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/codegrep/internal/core/domain"
)

const sampleResponse = `{
  "time": 42,
  "partial": false,
  "facets": {
    "count": 23,
    "lang": {"buckets": [{"val": "Go", "count": 15}, {"val": "Rust", "count": 8}]},
    "repo": {"buckets": [{"val": "golang/go", "count": 12}]},
    "path": {"buckets": [{"val": "src/", "count": 9}]}
  },
  "hits": {
    "total": 23,
    "hits": [
      {
        "repo": {"raw": "golang/go"},
        "path": {"raw": "src/fmt/print.go"},
        "content": {"snippet": "<table><tr><td>1</td><td><mark>fmt</mark></td></tr></table>"}
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{Endpoint: server.URL + "/api/search", Rate: 1000, Burst: 100})
	require.NoError(t, err)
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, client.endpoint.String())
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.Equal(t, "codegrep", client.userAgent)
}

func TestNewClient_RejectsBadEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "ftp://grep.app"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildURL(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)

	t.Run("minimal query", func(t *testing.T) {
		u, err := url.Parse(client.BuildURL(domain.SearchParams{Page: 1, Query: "foo bar"}))
		require.NoError(t, err)

		q := u.Query()
		assert.Equal(t, "foo bar", q.Get("q"))
		assert.Equal(t, "e", q.Get("format"))
		assert.False(t, q.Has("page"), "page one is implicit")
		assert.False(t, q.Has("case"))
		assert.False(t, q.Has("regexp"))
		assert.False(t, q.Has("words"))
	})

	t.Run("all parameters", func(t *testing.T) {
		params := domain.SearchParams{
			Page:          3,
			Query:         `fn\s+main`,
			CaseSensitive: true,
			Regex:         true,
			WholeWords:    true,
			Languages:     []string{"Go", "Rust"},
			Repo:          "golang/",
			Path:          "src/",
		}
		u, err := url.Parse(client.BuildURL(params))
		require.NoError(t, err)

		q := u.Query()
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "true", q.Get("case"))
		assert.Equal(t, "true", q.Get("regexp"))
		assert.Equal(t, "true", q.Get("words"))
		assert.Equal(t, []string{"Go", "Rust"}, q["f.lang"])
		assert.Equal(t, "golang/", q.Get("f.repo.pattern"))
		assert.Equal(t, "src/", q.Get("f.path.pattern"))
	})
}

func TestSearch_DecodesResponse(t *testing.T) {
	var gotUA, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	})

	res, err := client.Search(context.Background(), domain.SearchParams{Page: 1, Query: "fmt"})
	require.NoError(t, err)

	assert.Equal(t, "codegrep", gotUA)
	assert.Equal(t, "fmt", gotQuery)
	assert.Equal(t, 23, res.Count)
	assert.Equal(t, 23, res.Total)
	assert.Equal(t, int64(42), res.TimeMS)
	assert.Equal(t, []domain.Bucket{{Value: "Go", Count: 15}, {Value: "Rust", Count: 8}}, res.Languages)
	assert.Equal(t, []domain.Bucket{{Value: "golang/go", Count: 12}}, res.Repositories)
	assert.Equal(t, []domain.Bucket{{Value: "src/", Count: 9}}, res.Paths)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "golang/go", res.Hits[0].Repo)
	assert.Equal(t, "src/fmt/print.go", res.Hits[0].Path)
	assert.Contains(t, res.Hits[0].Snippet, "<mark>fmt</mark>")
}

func TestSearch_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	res, err := client.Search(context.Background(), domain.SearchParams{Page: 1, Query: "x"})
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Hits)
}

func TestSearch_RateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRetryAfter, "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), domain.SearchParams{Page: 1, Query: "x"})
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.False(t, rlErr.ResetAt.IsZero())
}

func TestSearch_APIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		notFound bool
		server   bool
	}{
		{name: "not found", status: http.StatusNotFound, notFound: true},
		{name: "bad request", status: http.StatusBadRequest},
		{name: "server error", status: http.StatusBadGateway, server: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			_, err := client.Search(context.Background(), domain.SearchParams{Page: 1, Query: "x"})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Message)
			assert.Equal(t, tt.notFound, IsNotFound(err))
			assert.Equal(t, tt.server, IsServerError(err))
			assert.False(t, IsRateLimited(err))
		})
	}
}

func TestSearch_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":`))
	})

	_, err := client.Search(context.Background(), domain.SearchParams{Page: 1, Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestSearch_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, domain.SearchParams{Page: 1, Query: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
