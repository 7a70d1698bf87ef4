package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change the settings stored in config.toml.

Command-line flags always take precedence over the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a config value. Lists take comma-separated values.

Examples:
  codegrep config set search.pages 10
  codegrep config set search.languages Go,Rust
  codegrep config set output.color never`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	entries, err := settingsService.Entries()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	r := lipgloss.NewRenderer(out)
	keyStyle := r.NewStyle().Bold(true)
	mutedStyle := r.NewStyle().Faint(true)

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}

	for _, e := range entries {
		value := e.Value
		if value == "" {
			value = mutedStyle.Render("(unset)")
		}
		line := keyStyle.Render(e.Key) + strings.Repeat(" ", width-len(e.Key)) + " = " + value
		if !e.FromFile {
			line += " " + mutedStyle.Render("(default)")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	fmt.Fprintln(cmd.OutOrStdout(), settingsService.Path())
	return nil
}
