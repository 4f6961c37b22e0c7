// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"unitload/internal/config"
	"unitload/internal/cueenv"
	"unitload/internal/diag"
	"unitload/internal/dispatch"
	"unitload/internal/issue"
	"unitload/internal/manifest"
	"unitload/internal/registry"
	"unitload/internal/resolve"
	"unitload/internal/shellenv"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all Cobra command handlers receive an App
	// reference and delegate business logic through its services.
	App struct {
		Config config.Provider
		Sink   diag.Sink
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply fakes to isolate specific behavior.
	Dependencies struct {
		Config config.Provider
		Sink   diag.Sink
		Stdout io.Writer
		Stderr io.Writer
	}

	// loader bundles a fully wired resolution pipeline for one invocation:
	// configuration, the mapping registry, the unit environment, and the
	// started dispatcher.
	loader struct {
		cfg  *config.Config
		reg  *registry.Registry
		env  dispatch.Environment
		disp *dispatch.Dispatcher
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		Sink:   deps.Sink,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// sink returns the injected diagnostic sink, or a terminal renderer built
// with the current verbosity. Built lazily because the verbose flag is only
// known after flag parsing.
func (a *App) sink() diag.Sink {
	if a.Sink != nil {
		return a.Sink
	}
	return NewLogSink(a.stderr, verbose)
}

// buildLoader assembles the resolution pipeline from configuration:
// registry with root and mappings, manifest entries found under the root,
// the configured unit environment, and a started dispatcher.
//
// Mapping registration failures are not fatal: they surface as diagnostics
// through the sink and the remaining mappings stay usable.
func (a *App) buildLoader(ctx context.Context) (*loader, error) {
	sink := a.sink()

	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return nil, err
	}

	reg := registry.New(sink)
	if cfg.ModulesRoot != "" {
		if err := reg.SetRoot(cfg.ModulesRoot); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("set modules root").
				WithResource(cfg.ModulesRoot).
				WithSuggestion("Create the directory or fix modules_root in the config file").
				WithIssue(issue.ModulesRootNotFoundId).
				Wrap(err).
				BuildError()
		}
	}

	root := reg.Root()

	// Config mappings register first, so they are probed before manifest
	// entries for the same prefix.
	cfgMappings := &manifest.Manifest{
		Namespaces: cfg.Namespaces,
		Overrides:  cfg.Overrides,
	}
	cfgMappings.Apply(reg, root, sink)

	if root != "" {
		m, err := manifest.Load(filepath.Join(root, manifest.FileName))
		if err != nil {
			sink.Report(diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Code:     diag.CodeManifestParseError,
				Message:  "mapping manifest rejected",
				Path:     filepath.Join(root, manifest.FileName),
				Cause:    err,
			})
		}
		m.Apply(reg, root, sink)
	}

	env, err := a.buildEnvironment(cfg)
	if err != nil {
		return nil, err
	}

	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = env.Extensions()
	}

	disp := dispatch.New(dispatch.Deps{
		Registry:    reg,
		Resolver:    resolve.New(reg, exts),
		Environment: env,
		Sink:        sink,
	})
	disp.Start()

	return &loader{cfg: cfg, reg: reg, env: env, disp: disp}, nil
}

// buildEnvironment creates the unit environment selected by configuration.
func (a *App) buildEnvironment(cfg *config.Config) (dispatch.Environment, error) {
	switch cfg.Environment {
	case config.EnvironmentShell:
		env, err := shellenv.New(a.stdout, a.stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to create shell environment: %w", err)
		}
		return env, nil
	default:
		return cueenv.New(), nil
	}
}
