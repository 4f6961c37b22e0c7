// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the optional unitload.toml mapping manifest kept
// in the modules root. The manifest bulk-registers namespace mappings and
// explicit overrides without touching the main config file, so a tree of
// units can carry its own layout description.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"unitload/internal/diag"
	"unitload/internal/registry"
	"unitload/pkg/symbol"
)

// FileName is the manifest file name looked up inside the modules root.
const FileName = "unitload.toml"

// Manifest is the decoded unitload.toml.
type Manifest struct {
	// Namespaces maps namespace prefixes to base directories. Relative
	// directories are resolved against the manifest's own directory.
	Namespaces map[string]string `toml:"namespaces"`

	// Overrides maps symbolic names to unit file paths.
	Overrides map[string]string `toml:"overrides"`
}

// Load reads the manifest at path. A missing file is not an error; it
// returns (nil, nil).
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Apply registers the manifest's entries on reg. dir is the directory the
// manifest was loaded from; relative namespace directories resolve against
// it. Failed namespace registrations are reported through reg's own
// diagnostics and skipped, they do not stop the remaining entries.
//
// Namespaces register in sorted-prefix order. Resolution probes mappings in
// registration order, so iterating the decoded map directly would make the
// winner between two overlapping prefixes vary from run to run.
func (m *Manifest) Apply(reg *registry.Registry, dir string, sink diag.Sink) {
	if m == nil {
		return
	}
	if sink == nil {
		sink = diag.NewSlogSink(nil)
	}

	prefixes := maps.Keys(m.Namespaces)
	slices.Sort(prefixes)
	for _, prefix := range prefixes {
		nsDir := m.Namespaces[prefix]
		if !filepath.IsAbs(nsDir) {
			nsDir = filepath.Join(dir, nsDir)
		}
		// Registration failures emit their own directory_not_found
		// diagnostic; nothing more to report here.
		_ = reg.RegisterNamespace(prefix, nsDir)
	}

	names := maps.Keys(m.Overrides)
	slices.Sort(names)
	for _, name := range names {
		path := m.Overrides[name]
		if ok, errs := symbol.Name(name).IsValid(); !ok {
			sink.Report(diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Code:     diag.CodeNameNotFound,
				Message:  "manifest override has an invalid symbolic name",
				Symbol:   name,
				Cause:    errs[0],
			})
			continue
		}
		reg.RegisterOverride(symbol.Name(name), path)
	}
}
