// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"log/slog"

	"unitload/pkg/fspath"
	"unitload/pkg/symbol"
)

// RegisterOverride pins name to an exact file path, bypassing namespace
// resolution. The name is stored in canonical (lower-cased) form; a
// relative path is rewritten against the modules root. The path is not
// checked for existence here — that is deferred to load time. Registering
// the same name again overwrites the previous entry.
func (r *Registry) RegisterOverride(name symbol.Name, path string) {
	if !fspath.IsAbs(path) {
		path = fspath.JoinBase(r.Root(), path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := name.Canonical()
	r.overrides[key] = path
	slog.Debug("Registered explicit override.", "name", key, "path", path)
}

// LookupOverride returns the pinned path for name, if any. Case-insensitive,
// no side effects.
func (r *Registry) LookupOverride(name symbol.Name) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.overrides[name.Canonical()]
	return path, ok
}

// Overrides returns a snapshot of the override table keyed by canonical
// name.
func (r *Registry) Overrides() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.overrides))
	for k, v := range r.overrides {
		out[k] = v
	}
	return out
}
