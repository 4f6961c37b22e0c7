// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"unitload/internal/issue"
	"unitload/pkg/symbol"

	"github.com/spf13/cobra"
)

// newResolveCommand creates the `unitload resolve` command. It maps a
// symbolic name to a file path without loading anything.
func newResolveCommand(app *App) *cobra.Command {
	var probe bool

	resolveCmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve a unit name to its file path",
		Long: `Resolve a symbolic unit name to the file it maps to.

Overrides are consulted first; otherwise the namespace mappings are
probed in registration order using the configured extension list.
Nothing is loaded or executed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, args[0], probe)
		},
	}

	resolveCmd.Flags().BoolVar(&probe, "probe", false, "existence check: report only found/not found, suppress diagnostics")

	return resolveCmd
}

func runResolve(cmd *cobra.Command, app *App, rawName string, probe bool) error {
	name := symbol.Name(rawName)
	if ok, errs := name.IsValid(); !ok {
		return fmt.Errorf("invalid unit name %q: %v", rawName, errs)
	}

	ld, err := app.buildLoader(cmd.Context())
	if err != nil {
		renderIssuePage(err, os.Stderr)
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	path, ok := ld.disp.Resolver().Resolve(name)
	if !ok {
		if probe {
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("not found"))
			return &ExitError{Code: 1}
		}
		rendered, rerr := issue.Get(issue.NameNotFoundId).Render("dark")
		if rerr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return &ExitError{Code: 1, Err: fmt.Errorf("no file found for %q", rawName)}
	}

	fmt.Fprintln(app.stdout, NameStyle.Render(path))
	return nil
}
