package mcp

import (
	"bytes"
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
	"github.com/custodia-labs/codegrep/internal/printer"
	"github.com/custodia-labs/codegrep/internal/snippet"
)

// defaultToolPages keeps tool answers small unless more pages are asked for.
const defaultToolPages = 1

// FiltersInput is the input schema for the code_filters tool.
type FiltersInput struct {
	Query           string   `json:"query" jsonschema:"the text or regular expression to search for"`
	CaseInsensitive bool     `json:"case_insensitive,omitempty" jsonschema:"ignore letter case"`
	Text            bool     `json:"text,omitempty" jsonschema:"treat the query as plain text instead of a regular expression"`
	Words           bool     `json:"words,omitempty" jsonschema:"match whole words only (implies text)"`
	Languages       []string `json:"languages,omitempty" jsonschema:"restrict results to these languages"`
	Repo            string   `json:"repo,omitempty" jsonschema:"repository pattern filter"`
	Path            string   `json:"path,omitempty" jsonschema:"file path pattern filter"`
}

func (in FiltersInput) params() domain.SearchParams {
	return domain.QueryFlags{
		CaseInsensitive: in.CaseInsensitive,
		Text:            in.Text,
		Words:           in.Words,
		Languages:       in.Languages,
		Repo:            in.Repo,
		Path:            in.Path,
	}.Params(in.Query)
}

// SearchInput is the input schema for the code_search tool.
type SearchInput struct {
	Query           string   `json:"query" jsonschema:"the text or regular expression to search for"`
	CaseInsensitive bool     `json:"case_insensitive,omitempty" jsonschema:"ignore letter case"`
	Text            bool     `json:"text,omitempty" jsonschema:"treat the query as plain text instead of a regular expression"`
	Words           bool     `json:"words,omitempty" jsonschema:"match whole words only (implies text)"`
	Languages       []string `json:"languages,omitempty" jsonschema:"restrict results to these languages"`
	Repo            string   `json:"repo,omitempty" jsonschema:"repository pattern filter"`
	Path            string   `json:"path,omitempty" jsonschema:"file path pattern filter"`
	Pages           int      `json:"pages,omitempty" jsonschema:"number of result pages to fetch (default 1)"`
	Context         bool     `json:"context,omitempty" jsonschema:"include non-matching context lines"`
	NoLineNumbers   bool     `json:"no_line_numbers,omitempty" jsonschema:"omit line numbers"`
}

func (in SearchInput) params() domain.SearchParams {
	return FiltersInput{
		Query:           in.Query,
		CaseInsensitive: in.CaseInsensitive,
		Text:            in.Text,
		Words:           in.Words,
		Languages:       in.Languages,
		Repo:            in.Repo,
		Path:            in.Path,
	}.params()
}

// SearchOutput is the output schema for the code_search tool.
type SearchOutput struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Hits  int    `json:"hits"`
	Total int    `json:"total"`
}

// BucketOutput is one facet entry.
type BucketOutput struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FiltersOutput is the output schema for the code_filters tool.
type FiltersOutput struct {
	Languages    []BucketOutput `json:"languages"`
	Repositories []BucketOutput `json:"repositories"`
	Paths        []BucketOutput `json:"paths"`
	TotalPages   int            `json:"total_pages"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "code_search",
		Description: "Search public source code on grep.app and return matching lines",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "code_filters",
		Description: "Show which languages, repositories and paths a code search matches",
	}, s.handleFilters)
}

// handleSearch renders matches as uncoloured text, one link header per hit.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	pages := input.Pages
	if pages <= 0 {
		pages = defaultToolPages
	}

	var buf bytes.Buffer
	palette := domain.NoColor()
	renderer := snippet.New(palette, snippet.Options{
		Context:         input.Context,
		HideLineNumbers: input.NoLineNumbers,
	})
	out := printer.New(&buf, palette, renderer, s.host())

	var output SearchOutput
	req := driving.SearchRequest{Params: input.params(), PageLimit: pages}
	err := s.ports.Search.Search(ctx, req, func(_ int, res *domain.SearchResult) error {
		output.Pages++
		output.Hits += len(res.Hits)
		output.Total = res.Count
		return out.PrintPage(res)
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}
	output.Text = buf.String()

	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output.Text}},
	}
	return result, output, nil
}

// handleFilters returns the facet overview of the first page.
func (s *Server) handleFilters(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FiltersInput,
) (*mcp.CallToolResult, FiltersOutput, error) {
	summary, err := s.ports.Search.Summary(ctx, input.params())
	if err != nil {
		return nil, FiltersOutput{}, err
	}

	return nil, FiltersOutput{
		Languages:    buckets(summary.Languages),
		Repositories: buckets(summary.Repositories),
		Paths:        buckets(summary.Paths),
		TotalPages:   summary.TotalPages,
	}, nil
}

func (s *Server) host() string {
	if s.ports.Settings == nil {
		return ""
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return ""
	}
	return settings.Output.Host
}

func buckets(in []domain.Bucket) []BucketOutput {
	out := make([]BucketOutput, len(in))
	for i, b := range in {
		out[i] = BucketOutput{Value: b.Value, Count: b.Count}
	}
	return out
}
