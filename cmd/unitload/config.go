// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"unitload/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// newConfigCommand creates the `unitload config` command tree.
// Subcommands that read configuration use the App's config provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage unitload configuration",
		Long: `Manage unitload configuration.

Configuration is stored in:
  - Linux: ~/.config/unitload/config.cue
  - macOS: ~/Library/Application Support/unitload/config.cue
  - Windows: %APPDATA%\unitload\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateDefaultConfig(); err != nil {
				return err
			}
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			path := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
			fmt.Fprintln(app.stdout, SuccessStyle.Render("✓ ")+"config file at "+NameStyle.Render(path))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvedPath(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no config file, using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		renderIssuePage(err, os.Stderr)
		return err
	}

	out := app.stdout
	keyStyle := NameStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	path, perr := config.ResolvedPath(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if perr == nil && path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	modulesRoot := cfg.ModulesRoot
	if modulesRoot == "" {
		modulesRoot = "(derived from executable location)"
	}
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("modules_root"), valueStyle.Render(modulesRoot))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("environment"), valueStyle.Render(string(cfg.Environment)))

	exts := "(environment defaults)"
	if len(cfg.Extensions) > 0 {
		exts = fmt.Sprintf("%v", cfg.Extensions)
	}
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("extensions"), valueStyle.Render(exts))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("ui.verbose"), valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	if len(cfg.Namespaces) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, keyStyle.Render("namespaces")+":")
		prefixes := maps.Keys(cfg.Namespaces)
		slices.Sort(prefixes)
		for _, prefix := range prefixes {
			fmt.Fprintf(out, "  %s → %s\n", prefix, cfg.Namespaces[prefix])
		}
	}

	if len(cfg.Overrides) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, keyStyle.Render("overrides")+":")
		names := maps.Keys(cfg.Overrides)
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s → %s\n", name, cfg.Overrides[name])
		}
	}

	return nil
}
