// Package cli implements the codegrep command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/codegrep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/codegrep/internal/adapters/driven/grepapp"
	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driving"
	"github.com/custodia-labs/codegrep/internal/core/services"
	"github.com/custodia-labs/codegrep/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Services used by the commands. They are built after flag parsing
// unless already set, which is how tests inject mocks.
var (
	searchService   driving.SearchService
	settingsService driving.SettingsService
)

// Persistent flags.
var (
	flagVerbose   bool
	flagConfigDir string
	flagJobs      int
)

var rootCmd = &cobra.Command{
	Use:   "codegrep [flags] <query>",
	Short: "Search public source code on grep.app",
	Long: `codegrep queries the grep.app code search service and prints matching
lines grouped by file. Queries are regular expressions unless --text or
--words is given.

Examples:
  codegrep 'func \w+Handler'
  codegrep -w -l Go -r golang/ ErrNotExist
  codegrep -f -a 'TODO('`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: initServices,
	RunE:              runSearch,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log diagnostics to stderr")
	pf.StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.codegrep)")
	pf.IntVarP(&flagJobs, "jobs", "j", domain.DefaultConcurrency, "pages fetched concurrently")
}

// Execute runs the root command. Interrupts cancel in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// PrintError writes err to w as a styled line, followed by a hint when the
// failure came from the search service.
func PrintError(w io.Writer, err error) {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("error:")
	fmt.Fprintf(w, "%s %s\n", label, err)
	if hint := errorHint(err); hint != "" {
		fmt.Fprintln(w, r.NewStyle().Faint(true).Render("hint: "+hint))
	}
}

func errorHint(err error) string {
	switch {
	case grepapp.IsRateLimited(err):
		return "grep.app is rate limiting requests; wait a moment or lower " +
			domain.KeyClientRate + " and --jobs"
	case grepapp.IsNotFound(err):
		return "the API endpoint was not found; check " + domain.KeyClientEndpoint +
			" with 'codegrep config show'"
	case grepapp.IsServerError(err):
		return "grep.app is having problems; try again later"
	}
	return ""
}

// initServices wires the default adapters for anything not injected.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if settingsService == nil {
		store, err := file.NewConfigStore(flagConfigDir)
		if err != nil {
			return fmt.Errorf("open config: %w", err)
		}
		settingsService = services.NewSettingsService(store)
		logger.Debug("config: %s", store.Path())
	}

	if searchService != nil {
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	jobs := settings.Search.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = flagJobs
	}
	if jobs < 1 {
		return fmt.Errorf("%w: --jobs must be at least 1", domain.ErrInvalidInput)
	}

	client, err := grepapp.NewClient(grepapp.Config{
		Endpoint:  settings.Client.Endpoint,
		Timeout:   settings.Client.Timeout,
		Rate:      settings.Client.Rate,
		Burst:     settings.Client.Burst,
		UserAgent: "codegrep/" + version,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	searchService = services.NewSearchService(client, services.SearchOptions{Concurrency: jobs})
	logger.Debug("search: endpoint=%s jobs=%d", settings.Client.Endpoint, jobs)
	return nil
}
