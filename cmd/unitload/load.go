// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"unitload/internal/dispatch"
	"unitload/pkg/symbol"

	"github.com/spf13/cobra"
)

// newLoadCommand creates the `unitload load` command. It resolves each
// name, loads the file through the configured environment, and verifies
// that the unit declared the requested name.
func newLoadCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>...",
		Short: "Resolve, load, and verify one or more units",
		Long: `Resolve each symbolic name to a file, load the file through the
configured unit environment, and verify that the requested name is
defined afterwards.

Failures are reported as diagnostics and the command exits non-zero,
but every requested name is attempted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, app, args)
		},
	}
}

func runLoad(cmd *cobra.Command, app *App, rawNames []string) error {
	ld, err := app.buildLoader(cmd.Context())
	if err != nil {
		renderIssuePage(err, os.Stderr)
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	failed := 0
	for _, raw := range rawNames {
		name := symbol.Name(raw)
		if ok, errs := name.IsValid(); !ok {
			fmt.Fprintln(app.stdout, ErrorStyle.Render("✗ ")+raw+SubtitleStyle.Render(fmt.Sprintf(" (invalid name: %v)", errs)))
			failed++
			continue
		}

		res := ld.disp.OnReference(cmd.Context(), name, dispatch.Options{})
		if !res.Loaded {
			fmt.Fprintln(app.stdout, ErrorStyle.Render("✗ ")+raw)
			failed++
			continue
		}

		fmt.Fprintln(app.stdout, SuccessStyle.Render("✓ ")+raw+SubtitleStyle.Render(" ("+res.Path+")"))
	}

	if failed > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d units failed to load", failed, len(rawNames))}
	}
	return nil
}
