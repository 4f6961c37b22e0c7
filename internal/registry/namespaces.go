// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"log/slog"
	"strings"

	"unitload/internal/diag"
	"unitload/pkg/fspath"
	"unitload/pkg/symbol"
)

// RegisterNamespace maps a namespace prefix to a base directory. The
// directory must exist at registration time; otherwise the registration is
// rejected, a diagnostic is emitted, a *DirectoryNotFoundError is returned,
// and no mapping is stored or changed.
//
// A non-empty prefix is trimmed of leading/trailing separators and stored
// with exactly one trailing separator; the empty prefix is the catch-all
// root mapping. Registering a prefix twice overwrites the directory but
// keeps the prefix's original position in the iteration order.
func (r *Registry) RegisterNamespace(prefix, dir string) error {
	resolved, err := fspath.RealDir(dir)
	if err != nil {
		r.sink.Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeDirectoryNotFound,
			Message:  "namespace directory does not exist",
			Symbol:   prefix,
			Path:     dir,
			Cause:    err,
		})
		return &DirectoryNotFoundError{Path: dir, Cause: err}
	}

	if prefix != "" {
		prefix = strings.Trim(prefix, symbol.Separator) + symbol.Separator
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.dirs[prefix]; !exists {
		r.order = append(r.order, prefix)
	}
	r.dirs[prefix] = fspath.EnsureTrailingSep(resolved)
	slog.Debug("Registered namespace mapping.", "prefix", prefix, "dir", r.dirs[prefix])
	return nil
}

// Namespaces returns the namespace mappings as a snapshot in registration
// order.
func (r *Registry) Namespaces() []Mapping {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Mapping, 0, len(r.order))
	for _, prefix := range r.order {
		out = append(out, Mapping{Prefix: prefix, Dir: r.dirs[prefix]})
	}
	return out
}
