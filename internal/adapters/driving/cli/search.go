package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/codegrep/internal/adapters/driven/terminal"
	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
	"github.com/custodia-labs/codegrep/internal/printer"
	"github.com/custodia-labs/codegrep/internal/snippet"
)

// Search flags.
var (
	flagCaseInsensitive bool
	flagText            bool
	flagWords           bool
	flagContext         bool
	flagLanguages       []string
	flagRepo            string
	flagPath            string
	flagColor           string
	flagNoLineNumbers   bool
	flagFilters         bool
	flagPages           int
)

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flagCaseInsensitive, "ignore-case", "i", false, "case-insensitive search")
	f.BoolVarP(&flagText, "text", "a", false, "treat the query as plain text, not a regular expression")
	f.BoolVarP(&flagWords, "words", "w", false, "match whole words only (implies --text)")
	f.BoolVarP(&flagContext, "context", "C", false, "show non-matching lines around matches")
	f.StringArrayVarP(&flagLanguages, "lang", "l", nil, "filter by language (repeatable, taken verbatim)")
	f.StringVarP(&flagRepo, "repo", "r", "", "filter by repository pattern")
	f.StringVarP(&flagPath, "path", "P", "", "filter by file path pattern")
	f.StringVarP(&flagColor, "color", "c", "auto", "colour output: auto, always or never")
	f.BoolVarP(&flagNoLineNumbers, "no-line-numbers", "N", false, "hide line numbers")
	f.BoolVarP(&flagFilters, "filters", "f", false, "show language, repository and path counts instead of matches")
	f.IntVarP(&flagPages, "pages", "p", domain.DefaultPageLimit, "maximum pages to fetch (0 = all)")
}

// searchOptions is the merge of flags, config file and defaults.
type searchOptions struct {
	query       domain.QueryFlags
	pages       int
	color       domain.ColorMode
	context     bool
	lineNumbers bool
	host        string
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts, err := resolveSearchOptions(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	palette := detectPalette(opts.color, out)
	params := opts.query.Params(args[0])
	renderer := snippet.New(palette, snippet.Options{
		Context:         opts.context,
		HideLineNumbers: !opts.lineNumbers,
	})
	pr := printer.New(out, palette, renderer, opts.host)

	if flagFilters {
		summary, err := searchService.Summary(cmd.Context(), params)
		if err != nil {
			return err
		}
		return pr.PrintSummary(summary)
	}

	req := driving.SearchRequest{Params: params, PageLimit: opts.pages}
	return searchService.Search(cmd.Context(), req, func(_ int, res *domain.SearchResult) error {
		return pr.PrintPage(res)
	})
}

// resolveSearchOptions applies explicit flags over the config file.
func resolveSearchOptions(cmd *cobra.Command) (searchOptions, error) {
	settings := domain.DefaultSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return searchOptions{}, fmt.Errorf("load settings: %w", err)
		}
		settings = *s
	}
	flags := cmd.Flags()

	opts := searchOptions{
		query: domain.QueryFlags{
			CaseInsensitive: settings.Search.CaseInsensitive,
			Text:            flagText,
			Words:           flagWords,
			Languages:       settings.Search.Languages,
			Repo:            flagRepo,
			Path:            flagPath,
		},
		pages:       settings.Search.Pages,
		color:       settings.Output.Color,
		context:     settings.Output.Context,
		lineNumbers: settings.Output.LineNumbers,
		host:        settings.Output.Host,
	}

	if flags.Changed("ignore-case") {
		opts.query.CaseInsensitive = flagCaseInsensitive
	}
	if flags.Changed("lang") {
		opts.query.Languages = flagLanguages
	}
	if flags.Changed("pages") {
		opts.pages = flagPages
	}
	if opts.pages < 0 {
		return searchOptions{}, fmt.Errorf("%w: --pages must not be negative", domain.ErrInvalidInput)
	}
	if flags.Changed("color") {
		mode, err := domain.ParseColorMode(flagColor)
		if err != nil {
			return searchOptions{}, err
		}
		opts.color = mode
	}
	if flags.Changed("context") {
		opts.context = flagContext
	}
	if flags.Changed("no-line-numbers") {
		opts.lineNumbers = !flagNoLineNumbers
	}
	return opts, nil
}

// detectPalette inspects w when it is a file; anything else is not a terminal.
func detectPalette(mode domain.ColorMode, w io.Writer) domain.Palette {
	if f, ok := w.(*os.File); ok {
		return terminal.Detect(mode, f)
	}
	return terminal.Resolve(mode, false, "", termenv.Ascii)
}
