// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed conventions.md
var conventionsDoc string

// newConventionsCommand creates the `unitload conventions` command, which
// renders the name-to-path convention reference in the terminal.
func newConventionsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "conventions",
		Short: "Explain the name-to-path mapping conventions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rendered, err := glamour.Render(conventionsDoc, "dark")
			if err != nil {
				// Fall back to the raw markdown rather than failing.
				fmt.Fprintln(app.stdout, conventionsDoc)
				return nil
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}
