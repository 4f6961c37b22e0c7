// SPDX-License-Identifier: MPL-2.0

package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"unitload/internal/diag"
	"unitload/internal/manifest"
	"unitload/internal/registry"
)

func TestLoad_MissingFileIsNil(t *testing.T) {
	t.Parallel()

	m, err := manifest.Load(filepath.Join(t.TempDir(), manifest.FileName))
	if err != nil {
		t.Fatalf("Load() on missing file returned error: %v", err)
	}
	if m != nil {
		t.Errorf("Load() = %+v, want nil for missing file", m)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), manifest.FileName)
	if err := os.WriteFile(path, []byte("[namespaces\nbroken"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	if _, err := manifest.Load(path); err == nil {
		t.Error("Load() accepted invalid TOML")
	}
}

func TestApply_RegistersEntries(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(rootDir, "acme"), 0o755); err != nil {
		t.Fatalf("failed to create namespace dir: %v", err)
	}

	content := `
[namespaces]
"Acme" = "acme"

[overrides]
"Acme.Special" = "/pinned/Special.cue"
`
	path := filepath.Join(rootDir, manifest.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	reg := registry.New(nil)
	m.Apply(reg, rootDir, nil)

	mappings := reg.Namespaces()
	if len(mappings) != 1 || mappings[0].Prefix != "Acme." {
		t.Fatalf("Namespaces() = %v, want the Acme. mapping", mappings)
	}
	if got, ok := reg.LookupOverride("acme.special"); !ok || got != "/pinned/Special.cue" {
		t.Errorf("LookupOverride() = (%q, %v), want the pinned path", got, ok)
	}
}

func TestApply_SkipsBadEntries(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(rootDir, "good"), 0o755); err != nil {
		t.Fatalf("failed to create namespace dir: %v", err)
	}

	m := &manifest.Manifest{
		Namespaces: map[string]string{
			"Good":   "good",
			"Broken": "missing-dir",
		},
		Overrides: map[string]string{
			"bad/name": "/x.cue",
			"Fine":     "/fine.cue",
		},
	}

	var diags []diag.Diagnostic
	sink := diag.SinkFunc(func(d diag.Diagnostic) { diags = append(diags, d) })
	reg := registry.New(sink)
	m.Apply(reg, rootDir, sink)

	mappings := reg.Namespaces()
	if len(mappings) != 1 || mappings[0].Prefix != "Good." {
		t.Errorf("Namespaces() = %v, want only the Good. mapping", mappings)
	}
	if _, ok := reg.LookupOverride("fine"); !ok {
		t.Error("valid override was not registered")
	}
	if _, ok := reg.LookupOverride("bad/name"); ok {
		t.Error("invalid override name was registered")
	}
	if len(diags) != 2 {
		t.Errorf("got %d diagnostics, want 2 (one per skipped entry)", len(diags))
	}
}

func TestApply_NamespaceOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	m := &manifest.Manifest{Namespaces: map[string]string{}}
	for _, prefix := range []string{"Acme.P3", "Acme.P0", "Acme.P7", "Acme.P1", "Acme.P5", "Acme.P2", "Acme.P6", "Acme.P4"} {
		m.Namespaces[prefix] = "."
	}

	want := []string{
		"Acme.P0.", "Acme.P1.", "Acme.P2.", "Acme.P3.",
		"Acme.P4.", "Acme.P5.", "Acme.P6.", "Acme.P7.",
	}

	// Map iteration order varies per run; the registration order produced
	// by Apply must not.
	for i := 0; i < 20; i++ {
		reg := registry.New(nil)
		m.Apply(reg, rootDir, nil)

		got := reg.Namespaces()
		if len(got) != len(want) {
			t.Fatalf("Namespaces() returned %d mappings, want %d", len(got), len(want))
		}
		for j, mapping := range got {
			if mapping.Prefix != want[j] {
				t.Fatalf("iteration %d: Namespaces()[%d].Prefix = %q, want %q", i, j, mapping.Prefix, want[j])
			}
		}
	}
}

func TestApply_NilManifestIsNoop(t *testing.T) {
	t.Parallel()

	reg := registry.New(nil)
	var m *manifest.Manifest
	m.Apply(reg, t.TempDir(), nil)

	if len(reg.Namespaces()) != 0 {
		t.Error("nil manifest registered mappings")
	}
}
