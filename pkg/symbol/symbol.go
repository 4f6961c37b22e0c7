// SPDX-License-Identifier: MPL-2.0

package symbol

import (
	"errors"
	"fmt"
	"strings"
)

// Separator is the namespace separator in fully-qualified symbolic names.
const Separator = "."

// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
var ErrInvalidName = errors.New("invalid symbolic name")

type (
	// Name represents a fully-qualified symbolic name such as
	// "Acme.Widgets.Gadget". Names are hierarchical, separated by dots, and
	// compared case-insensitively. A single leading separator is tolerated
	// (".Acme.Foo" and "Acme.Foo" reference the same unit).
	// The zero value ("") is invalid.
	Name string

	// InvalidNameError is returned when a Name value is empty,
	// whitespace-only, or contains filesystem path separators.
	InvalidNameError struct {
		Value Name
	}
)

// String returns the string representation of the Name.
func (n Name) String() string { return string(n) }

// IsValid returns whether the Name is valid. A valid name is non-empty, not
// whitespace-only, and carries no filesystem path separators.
func (n Name) IsValid() (bool, []error) {
	s := string(n.StripLeading())
	if strings.TrimSpace(s) == "" {
		return false, []error{&InvalidNameError{Value: n}}
	}
	if strings.ContainsAny(s, `/\`) {
		return false, []error{&InvalidNameError{Value: n}}
	}
	return true, nil
}

// StripLeading removes a single leading separator, if present. A
// fully-qualified name may be written with or without one; both forms
// reference the same unit.
func (n Name) StripLeading() Name {
	return Name(strings.TrimPrefix(string(n), Separator))
}

// Canonical returns the lower-cased form used as a registry key. Two names
// differing only in letter case are the same name.
func (n Name) Canonical() string {
	return strings.ToLower(string(n.StripLeading()))
}

// Split divides the name at its last separator. The namespace part keeps its
// trailing separator ("Acme.Widgets." for "Acme.Widgets.Gadget") and is empty
// for an unqualified name; the tail is the final segment.
func (n Name) Split() (namespace, tail string) {
	s := string(n.StripLeading())
	i := strings.LastIndex(s, Separator)
	if i < 0 {
		return "", s
	}
	return s[:i+1], s[i+1:]
}

// TailPath returns the final segment with each underscore rewritten as a "/"
// path boundary. Underscores in the namespace part carry no structural
// meaning and are handled elsewhere; this applies to the tail only.
func (n Name) TailPath() string {
	_, tail := n.Split()
	return strings.ReplaceAll(tail, "_", "/")
}

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid symbolic name %q: must be a non-empty dotted identifier", e.Value)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }
