// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// newMappingsCommand creates the `unitload mappings` command, which lists
// the registry state after configuration and manifests are applied.
func newMappingsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "List active overrides and namespace mappings",
		Long: `List the mapping registry as the loader sees it: the modules root,
per-name overrides, and namespace mappings in the order they are
probed during resolution.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMappings(cmd, app)
		},
	}
}

func runMappings(cmd *cobra.Command, app *App) error {
	ld, err := app.buildLoader(cmd.Context())
	if err != nil {
		renderIssuePage(err, os.Stderr)
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	out := app.stdout

	root := ld.reg.Root()
	if root == "" {
		root = SubtitleStyle.Render("(not found)")
	}
	fmt.Fprintln(out, TitleStyle.Render("Modules root"))
	fmt.Fprintf(out, "  %s\n\n", root)

	overrides := ld.reg.Overrides()
	fmt.Fprintln(out, TitleStyle.Render("Overrides"))
	if len(overrides) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("  (none)"))
	} else {
		names := maps.Keys(overrides)
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s %s %s\n", NameStyle.Render(name), SubtitleStyle.Render("→"), overrides[name])
		}
	}
	fmt.Fprintln(out)

	// Namespaces print in registration order because that is the order
	// resolution probes them in.
	fmt.Fprintln(out, TitleStyle.Render("Namespaces"))
	namespaces := ld.reg.Namespaces()
	if len(namespaces) == 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("  (none)"))
	}
	for _, m := range namespaces {
		prefix := m.Prefix
		if prefix == "" {
			prefix = SubtitleStyle.Render("(catch-all)")
		} else {
			prefix = NameStyle.Render(prefix)
		}
		fmt.Fprintf(out, "  %s %s %s\n", prefix, SubtitleStyle.Render("→"), m.Dir)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, TitleStyle.Render("Extensions"))
	fmt.Fprintf(out, "  %v\n", ld.disp.Resolver().Extensions())

	return nil
}
