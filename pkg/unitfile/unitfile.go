// SPDX-License-Identifier: MPL-2.0

// Package unitfile parses source-unit files: CUE documents that declare a
// loadable unit under the naming convention the resolver probes for. A unit
// file must declare the fully-qualified name consumers reference it by;
// after loading, the dispatcher checks that declaration against the
// requested name.
package unitfile

import (
	_ "embed"
	"fmt"
	"os"

	"unitload/pkg/cueutil"
	"unitload/pkg/symbol"
)

//go:embed unit_schema.cue
var unitSchema []byte

type (
	// Unitfile is the decoded form of a unit document.
	Unitfile struct {
		Unit Unit `json:"unit"`
	}

	// Unit is the declaration block of a unit file.
	Unit struct {
		// Name is the fully-qualified symbolic name this unit declares.
		Name string `json:"name"`
		// Description is an optional human-readable summary.
		Description string `json:"description,omitempty"`
		// Provides lists additional names declared by this unit (optional).
		Provides []string `json:"provides,omitempty"`
		// Requires lists names this unit references but does not declare
		// (optional, informational).
		Requires []string `json:"requires,omitempty"`
	}
)

// Parse reads and validates the unit file at path.
func Parse(path string) (*Unitfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit file: %w", err)
	}
	return ParseBytes(data, path)
}

// ParseBytes validates data against the unit schema. filename is used in
// error messages only.
func ParseBytes(data []byte, filename string) (*Unitfile, error) {
	uf, err := cueutil.Decode[Unitfile](unitSchema, data, "#Unitfile", filename)
	if err != nil {
		return nil, err
	}
	if ok, errs := symbol.Name(uf.Unit.Name).IsValid(); !ok {
		return nil, fmt.Errorf("%s: %w", filename, errs[0])
	}
	return uf, nil
}

// DeclaredNames returns every name the unit declares (the primary name plus
// any provides entries).
func (u *Unitfile) DeclaredNames() []symbol.Name {
	names := make([]symbol.Name, 0, 1+len(u.Unit.Provides))
	names = append(names, symbol.Name(u.Unit.Name))
	for _, p := range u.Unit.Provides {
		names = append(names, symbol.Name(p))
	}
	return names
}
