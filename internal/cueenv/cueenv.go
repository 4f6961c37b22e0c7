// SPDX-License-Identifier: MPL-2.0

// Package cueenv implements the unit-loading environment for CUE unit
// files. Loading a file parses and validates it, then records every name it
// declares in a case-insensitive symbol table; the dispatcher's post-load
// check consults that table.
package cueenv

import (
	"context"
	"log/slog"
	"sync"

	"unitload/pkg/symbol"
	"unitload/pkg/unitfile"
)

// Environment loads CUE unit files and tracks declared names. Safe for
// concurrent use.
type Environment struct {
	mu sync.RWMutex

	// declared maps canonical names to the file that declared them.
	declared map[string]string
}

// New creates an empty Environment.
func New() *Environment {
	return &Environment{declared: make(map[string]string)}
}

// Extensions returns the probe order for CUE units: the current extension
// first, then the two legacy extensions older unitload releases wrote.
func (e *Environment) Extensions() []string {
	return []string{".cue", ".unit", ".unitfile"}
}

// Load parses the unit file at path and records its declared names.
// Reloading a path that declares already-known names overwrites the
// previous declaration.
func (e *Environment) Load(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	uf, err := unitfile.Parse(path)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, name := range uf.DeclaredNames() {
		e.declared[name.Canonical()] = path
	}
	slog.Debug("Loaded CUE unit.", "path", path, "name", uf.Unit.Name)
	return nil
}

// Defined reports whether name has been declared by any loaded unit.
func (e *Environment) Defined(name symbol.Name) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.declared[name.Canonical()]
	return ok
}

// Source returns the file that declared name, if any.
func (e *Environment) Source(name symbol.Name) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	path, ok := e.declared[name.Canonical()]
	return path, ok
}
