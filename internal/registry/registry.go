// SPDX-License-Identifier: MPL-2.0

// Package registry holds the two mapping tables that drive name-to-path
// resolution: explicit per-name overrides and namespace-prefix mappings.
// Both tables plus the modules root live on a single Registry value that is
// constructed once and shared by reference; registration is expected during
// setup, lookups dominate afterwards, and a read-write lock covers both.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"unitload/internal/diag"
	"unitload/pkg/fspath"
)

// ErrDirectoryNotFound is the sentinel error wrapped by DirectoryNotFoundError.
var ErrDirectoryNotFound = errors.New("directory not found")

type (
	// DirectoryNotFoundError is returned when a namespace mapping or the
	// modules root is registered against a directory that does not exist.
	// The rejected registration leaves prior state untouched.
	DirectoryNotFoundError struct {
		// Path is the directory that failed to resolve.
		Path string
		// Cause is the underlying filesystem error.
		Cause error
	}

	// Mapping is one namespace-prefix entry in registration order. Prefix is
	// "" for the catch-all root mapping, otherwise a dotted prefix ending in
	// exactly one separator. Dir always ends in exactly one separator.
	Mapping struct {
		Prefix string
		Dir    string
	}

	// Registry owns the explicit override table, the namespace-prefix table,
	// and the modules root. Safe for concurrent use.
	Registry struct {
		mu sync.RWMutex

		// root is the modules root, empty until computed or set.
		root string

		// overrides maps canonical (lower-cased) names to file paths.
		overrides map[string]string

		// order preserves namespace registration order; dirs maps each
		// prefix to its base directory. Duplicate registration overwrites
		// the directory but keeps the original position.
		order []string
		dirs  map[string]string

		sink diag.Sink
	}
)

// Error implements the error interface for DirectoryNotFoundError.
func (e *DirectoryNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("directory not found: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// Unwrap returns ErrDirectoryNotFound for errors.Is() compatibility.
func (e *DirectoryNotFoundError) Unwrap() error { return ErrDirectoryNotFound }

// New creates an empty Registry. A nil sink falls back to slog-based
// reporting.
func New(sink diag.Sink) *Registry {
	if sink == nil {
		sink = diag.NewSlogSink(nil)
	}
	return &Registry{
		overrides: make(map[string]string),
		dirs:      make(map[string]string),
		sink:      sink,
	}
}

// Root returns the modules root, computing the default lazily on first use.
// The default is two directories above the running executable; if that does
// not resolve to an existing directory the root stays empty and a
// diagnostic is emitted.
func (r *Registry) Root() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rootLocked()
}

func (r *Registry) rootLocked() string {
	if r.root != "" {
		return r.root
	}

	exe, err := os.Executable()
	if err != nil {
		r.sink.Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeDirectoryNotFound,
			Message:  "cannot locate executable to derive the default modules root",
			Cause:    err,
		})
		return ""
	}

	candidate := filepath.Dir(filepath.Dir(filepath.Dir(exe)))
	dir, err := fspath.RealDir(candidate)
	if err != nil {
		r.sink.Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeDirectoryNotFound,
			Message:  "default modules root does not exist",
			Path:     candidate,
			Cause:    err,
		})
		return ""
	}

	slog.Debug("Computed default modules root.", "dir", dir)
	r.root = dir
	return r.root
}

// SetRoot overrides the modules root. The directory must exist; on failure
// the previous value (possibly empty) is kept, a diagnostic is emitted, and
// a *DirectoryNotFoundError is returned.
func (r *Registry) SetRoot(dir string) error {
	resolved, err := fspath.RealDir(dir)
	if err != nil {
		r.sink.Report(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeDirectoryNotFound,
			Message:  "modules root does not exist",
			Path:     dir,
			Cause:    err,
		})
		return &DirectoryNotFoundError{Path: dir, Cause: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = resolved
	slog.Debug("Modules root set.", "dir", resolved)
	return nil
}
