// SPDX-License-Identifier: MPL-2.0

// Package dispatch orchestrates lazy loading: one-time startup
// registration, the on-reference hook that resolves and loads a unit, and
// the post-load check that the requested name was actually declared.
//
// The dispatcher never fails hard. Every failure mode is reported through a
// diag.Sink and surfaced to the caller as an unsuccessful Result; a failed
// resolution simply means the referenced name stays undefined.
package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"unitload/internal/diag"
	"unitload/internal/registry"
	"unitload/internal/resolve"
	"unitload/pkg/symbol"
)

type (
	// Environment is the collaborator that executes a located unit file and
	// answers whether a symbolic name is defined afterwards. Extensions
	// drives the resolver's probe order: primary extension first, then
	// legacy fallbacks.
	Environment interface {
		Load(ctx context.Context, path string) error
		Defined(name symbol.Name) bool
		Extensions() []string
	}

	// Hook is the on-reference callback the dispatcher hands to the host's
	// lazy-load mechanism.
	Hook func(ctx context.Context, name symbol.Name, opts Options) Result

	// Binder installs the dispatcher's hook into the host. Hosts that call
	// OnReference directly can leave it nil.
	Binder interface {
		Install(hook Hook)
	}

	// Options adjusts a single reference.
	Options struct {
		// Probe marks the reference as an existence check: a miss is
		// expected and the name-not-found diagnostic is suppressed. This
		// replaces the original design's call-stack inspection with an
		// explicit caller contract.
		Probe bool
	}

	// Result is the outcome of one reference.
	Result struct {
		// Path is the resolved file, empty when nothing matched.
		Path string
		// Loaded reports whether the unit was loaded and declared the
		// requested name.
		Loaded bool
	}

	// Dispatcher wires the resolver, the environment, and the diagnostic
	// sink. The zero value is not usable; construct with New.
	Dispatcher struct {
		mu      sync.Mutex
		started bool

		reg    *registry.Registry
		res    *resolve.Resolver
		env    Environment
		binder Binder
		sink   diag.Sink
	}

	// Deps defines the injection points for building a Dispatcher. Nil
	// Sink falls back to slog reporting; nil Resolver is built from the
	// registry using the environment's extensions; nil Binder means the
	// host calls OnReference directly.
	Deps struct {
		Registry    *registry.Registry
		Resolver    *resolve.Resolver
		Environment Environment
		Binder      Binder
		Sink        diag.Sink
	}
)

// New creates a Dispatcher from deps. Registry and Environment are
// required.
func New(deps Deps) *Dispatcher {
	if deps.Sink == nil {
		deps.Sink = diag.NewSlogSink(nil)
	}
	if deps.Resolver == nil {
		deps.Resolver = resolve.New(deps.Registry, deps.Environment.Extensions())
	}
	return &Dispatcher{
		reg:    deps.Registry,
		res:    deps.Resolver,
		env:    deps.Environment,
		binder: deps.Binder,
		sink:   deps.Sink,
	}
}

// Resolver returns the dispatcher's resolver.
func (d *Dispatcher) Resolver() *resolve.Resolver { return d.res }

// Start performs the one-time startup sequence: compute and validate the
// modules root, install the catch-all namespace mapping pointing at it,
// and hand the on-reference hook to the binder. Safe under a concurrent
// first-call race; the second and later calls are no-ops. Returns whether
// this call performed the installation.
func (d *Dispatcher) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return false
	}
	d.started = true

	if root := d.reg.Root(); root != "" {
		// Root failures already produced a diagnostic; a missing root just
		// means no catch-all mapping until one is configured.
		if err := d.reg.RegisterNamespace("", root); err != nil {
			slog.Debug("Catch-all mapping not installed.", "error", err)
		}
	}

	if d.binder != nil {
		d.binder.Install(d.OnReference)
	}
	slog.Debug("Dispatcher started.")
	return true
}

// Started reports whether Start has run.
func (d *Dispatcher) Started() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

// OnReference is the lazy-load hook body. It resolves name, loads the
// located unit, and verifies the name is defined afterwards. Failures are
// reported through the sink and returned as an unsuccessful Result, never
// as a hard fault.
func (d *Dispatcher) OnReference(ctx context.Context, name symbol.Name, opts Options) Result {
	name = name.StripLeading()

	path, ok := d.res.Resolve(name)
	if !ok {
		if !opts.Probe {
			d.sink.Report(diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Code:     diag.CodeNameNotFound,
				Message:  "no registered mapping or probed file exists for this name",
				Symbol:   name.String(),
				Trace:    diag.CaptureTrace(1),
			})
		}
		return Result{}
	}

	if err := d.env.Load(ctx, path); err != nil {
		d.sink.Report(diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     diag.CodeUnitLoadFailed,
			Message:  "located unit failed to load",
			Symbol:   name.String(),
			Path:     path,
			Trace:    diag.CaptureTrace(1),
			Cause:    err,
		})
		return Result{Path: path}
	}

	if !d.env.Defined(name) {
		d.sink.Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeDeclaredNameMismatch,
			Message:  "loaded unit did not declare the expected name",
			Symbol:   name.String(),
			Path:     path,
			Trace:    diag.CaptureTrace(1),
		})
		return Result{Path: path}
	}

	return Result{Path: path, Loaded: true}
}
