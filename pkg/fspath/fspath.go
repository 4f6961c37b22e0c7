// SPDX-License-Identifier: MPL-2.0

// Package fspath centralizes the path-building rules shared by the
// registries and the resolver: relative components are written with "/"
// separators regardless of platform, base directories carry exactly one
// trailing separator, and joining a base with a relative component goes
// through a single code path.
package fspath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JoinBase joins a base directory with a slash-normalized relative
// component. The component uses "/" separators internally and is converted
// to the platform separator at this boundary.
func JoinBase(base, rel string) string {
	return filepath.Join(base, filepath.FromSlash(rel))
}

// EnsureTrailingSep returns p with exactly one trailing platform separator.
// The empty string is returned unchanged.
func EnsureTrailingSep(p string) string {
	if p == "" {
		return p
	}
	return strings.TrimRight(p, string(filepath.Separator)) + string(filepath.Separator)
}

// IsAbs reports whether p is an absolute path.
func IsAbs(p string) bool { return filepath.IsAbs(p) }

// RealDir resolves p to an absolute, cleaned path and verifies that it
// exists and is a directory. Returns an error otherwise; the returned path
// is empty on failure.
func RealDir(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: not a directory", abs)
	}
	return abs, nil
}

// FileExists reports whether p exists and is a regular file.
func FileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
