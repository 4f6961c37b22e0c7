// SPDX-License-Identifier: MPL-2.0

// Package resolve implements the name-to-path resolution algorithm: explicit
// overrides first, then namespace-prefix matching with multi-extension
// probing against the filesystem.
package resolve

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"unitload/internal/registry"
	"unitload/pkg/fspath"
	"unitload/pkg/symbol"
)

type (
	// Resolver maps symbolic names to files on disk. It consults the
	// registry's explicit override table before falling back to namespace
	// mappings, so per-name overrides always win over convention-based
	// discovery.
	Resolver struct {
		reg *registry.Registry

		// exts is the probe order: primary source extension first, then
		// legacy fallbacks. Each entry includes the leading dot.
		exts []string

		// exists is the file probe, injectable for tests.
		exists func(string) bool
	}
)

// DefaultExtensions is the probe order used when the caller supplies none.
var DefaultExtensions = []string{".cue", ".unit", ".unitfile"}

// New creates a Resolver over reg. A nil or empty exts uses
// DefaultExtensions.
func New(reg *registry.Registry, exts []string) *Resolver {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return &Resolver{reg: reg, exts: exts, exists: fspath.FileExists}
}

// Extensions returns the probe order.
func (r *Resolver) Extensions() []string {
	out := make([]string, len(r.exts))
	copy(out, r.exts)
	return out
}

// Resolve maps name to a file path. A single leading separator is stripped
// first ("Acme.Foo" and ".Acme.Foo" resolve identically). Returns the
// resolved path and true, or ("", false) when nothing matched.
func (r *Resolver) Resolve(name symbol.Name) (string, bool) {
	name = name.StripLeading()

	if path, ok := r.reg.LookupOverride(name); ok {
		slog.Debug("Resolved via explicit override.", "name", name.Canonical(), "path", path)
		return path, true
	}

	return r.resolveNamespaces(name)
}

// resolveNamespaces walks the namespace mappings in registration order.
// Any mapping whose prefix matches is probed; the first probe that finds an
// existing file wins. Registration order is deliberate: the original
// behavior accepts the first matching mapping, not the longest prefix.
func (r *Resolver) resolveNamespaces(name symbol.Name) (string, bool) {
	namespace, _ := name.Split()
	tail := name.TailPath()

	for _, m := range r.reg.Namespaces() {
		rest, ok := cutPrefixFold(namespace, m.Prefix)
		if !ok {
			continue
		}

		rel := strings.ReplaceAll(rest, symbol.Separator, "/") + tail
		for _, ext := range r.exts {
			candidate := fspath.JoinBase(m.Dir, rel+ext)
			if r.exists(candidate) {
				slog.Debug("Resolved via namespace mapping.",
					"name", name.Canonical(), "prefix", m.Prefix, "path", candidate)
				return candidate, true
			}
		}
	}

	return "", false
}

// cutPrefixFold removes prefix from s under case folding and returns the
// remainder. The comparison walks runes, not bytes, so a prefix whose
// lower-cased form has a different byte length still slices correctly.
func cutPrefixFold(s, prefix string) (string, bool) {
	for _, pr := range prefix {
		sr, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return "", false
		}
		if sr != pr && !strings.EqualFold(string(sr), string(pr)) {
			return "", false
		}
		s = s[size:]
	}
	return s, true
}
