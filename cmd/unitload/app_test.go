// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"unitload/internal/config"
	"unitload/internal/diag"
	"unitload/internal/dispatch"
	"unitload/internal/issue"
	"unitload/internal/registry"
	"unitload/pkg/symbol"
)

type staticConfig struct {
	cfg *config.Config
}

func (p staticConfig) Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error) {
	return p.cfg, nil
}

type collectSink struct {
	mu    sync.Mutex
	diags []diag.Diagnostic
}

func (s *collectSink) Report(d diag.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

func writeUnit(t *testing.T, root, rel, name string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create unit dir: %v", err)
	}
	content := "unit: {\n\tname: \"" + name + "\"\n}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write unit file: %v", err)
	}
	return path
}

func newTestApp(cfg *config.Config, sink diag.Sink) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticConfig{cfg: cfg},
		Sink:   sink,
		Stdout: &out,
		Stderr: &bytes.Buffer{},
	})
	return app, &out
}

func TestBuildLoader_WiresConfigMappings(t *testing.T) {
	root := t.TempDir()
	want := writeUnit(t, root, "acme/gadget.cue", "Acme.Gadget")

	cfg := &config.Config{
		ModulesRoot: root,
		Environment: config.EnvironmentCUE,
		Namespaces:  map[string]string{"acme.": "acme"},
	}
	sink := &collectSink{}
	app, _ := newTestApp(cfg, sink)

	ld, err := app.buildLoader(context.Background())
	if err != nil {
		t.Fatalf("buildLoader() error = %v", err)
	}
	if !ld.disp.Started() {
		t.Error("dispatcher should be started")
	}

	got, ok := ld.disp.Resolver().Resolve(symbol.Name("Acme.Gadget"))
	if !ok || got != want {
		t.Errorf("Resolve(Acme.Gadget) = %q, %v, want %q", got, ok, want)
	}
}

func TestBuildLoader_InstallsCatchAll(t *testing.T) {
	root := t.TempDir()
	want := writeUnit(t, root, "standalone.cue", "Standalone")

	cfg := &config.Config{ModulesRoot: root, Environment: config.EnvironmentCUE}
	app, _ := newTestApp(cfg, &collectSink{})

	ld, err := app.buildLoader(context.Background())
	if err != nil {
		t.Fatalf("buildLoader() error = %v", err)
	}

	got, ok := ld.disp.Resolver().Resolve(symbol.Name("Standalone"))
	if !ok || got != want {
		t.Errorf("Resolve(Standalone) = %q, %v, want %q", got, ok, want)
	}
}

func TestBuildLoader_AppliesManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "vendor"), 0o755); err != nil {
		t.Fatal(err)
	}
	manifestBody := "[namespaces]\n\"vendor.\" = \"vendor\"\n\n[overrides]\n\"Pinned.Unit\" = \"pinned/unit.cue\"\n"
	if err := os.WriteFile(filepath.Join(root, "unitload.toml"), []byte(manifestBody), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{ModulesRoot: root, Environment: config.EnvironmentCUE}
	app, _ := newTestApp(cfg, &collectSink{})

	ld, err := app.buildLoader(context.Background())
	if err != nil {
		t.Fatalf("buildLoader() error = %v", err)
	}

	if _, ok := ld.reg.LookupOverride(symbol.Name("Pinned.Unit")); !ok {
		t.Error("manifest override not registered")
	}

	found := false
	for _, m := range ld.reg.Namespaces() {
		if m.Prefix == "vendor." {
			found = true
		}
	}
	if !found {
		t.Errorf("manifest namespace not registered: %v", ld.reg.Namespaces())
	}
}

func TestBuildLoader_MissingModulesRoot(t *testing.T) {
	cfg := &config.Config{
		ModulesRoot: filepath.Join(t.TempDir(), "does-not-exist"),
		Environment: config.EnvironmentCUE,
	}
	app, _ := newTestApp(cfg, &collectSink{})

	_, err := app.buildLoader(context.Background())
	if err == nil {
		t.Fatal("buildLoader() should fail for a missing modules root")
	}
	if !errors.Is(err, registry.ErrDirectoryNotFound) {
		t.Errorf("error chain missing ErrDirectoryNotFound: %v", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueId != issue.ModulesRootNotFoundId {
		t.Errorf("error should link the modules-root catalog page: %v", err)
	}

	var page bytes.Buffer
	renderIssuePage(err, &page)
	if page.Len() == 0 {
		t.Error("renderIssuePage() wrote nothing for an error with a linked page")
	}
}

func TestBuildLoader_LoadsAndVerifies(t *testing.T) {
	root := t.TempDir()
	writeUnit(t, root, "acme/gadget.cue", "Acme.Gadget")

	cfg := &config.Config{
		ModulesRoot: root,
		Environment: config.EnvironmentCUE,
		Namespaces:  map[string]string{"acme.": "acme"},
	}
	sink := &collectSink{}
	app, _ := newTestApp(cfg, sink)

	ld, err := app.buildLoader(context.Background())
	if err != nil {
		t.Fatalf("buildLoader() error = %v", err)
	}

	res := ld.disp.OnReference(context.Background(), symbol.Name("Acme.Gadget"), dispatch.Options{})
	if !res.Loaded {
		t.Fatalf("OnReference should load the unit, diagnostics: %v", sink.diags)
	}
	if !ld.env.Defined(symbol.Name("acme.gadget")) {
		t.Error("loaded name should be defined case-insensitively")
	}
}

func TestBuildEnvironment_Kinds(t *testing.T) {
	app, _ := newTestApp(&config.Config{}, &collectSink{})

	cueEnv, err := app.buildEnvironment(&config.Config{Environment: config.EnvironmentCUE})
	if err != nil {
		t.Fatalf("buildEnvironment(cue) error = %v", err)
	}
	if exts := cueEnv.Extensions(); exts[0] != ".cue" {
		t.Errorf("cue extensions = %v", exts)
	}

	shellEnv, err := app.buildEnvironment(&config.Config{Environment: config.EnvironmentShell})
	if err != nil {
		t.Fatalf("buildEnvironment(shell) error = %v", err)
	}
	if exts := shellEnv.Extensions(); exts[0] != ".sh" {
		t.Errorf("shell extensions = %v", exts)
	}
}
