// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"unitload/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose diagnostic output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
)

// newRootCommand creates the base command and attaches all subcommands.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unitload",
		Short: "A lazy, convention-based source unit loader",
		Long: TitleStyle.Render("unitload") + SubtitleStyle.Render(" - A lazy, convention-based source unit loader") + `

unitload resolves symbolic unit names to files on disk using namespace
prefix mappings and per-name overrides, then loads them on first
reference through a pluggable unit environment (CUE or shell).

A reference like 'Acme.My_Widget' splits at the last dot: the namespace
'acme.' picks a directory, and underscores in the tail become path
separators, so the loader probes '<dir>/my/widget.cue' and friends.

` + SubtitleStyle.Render("Examples:") + `
  unitload resolve Acme.Gadget    Show the file a name resolves to
  unitload load Acme.Gadget       Resolve, load, and verify a unit
  unitload mappings               List active namespace mappings
  unitload config show            Show current configuration
  unitload conventions            Explain the name-to-path convention`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/unitload/config.cue)")

	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newLoadCommand(app))
	rootCmd.AddCommand(newMappingsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newConventionsCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	app := NewApp(Dependencies{})

	// Use fang.Execute for enhanced Cobra styling.
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
