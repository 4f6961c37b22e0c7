// SPDX-License-Identifier: MPL-2.0

package symbol_test

import (
	"errors"
	"testing"

	"unitload/pkg/symbol"
)

func TestName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value symbol.Name
		want  bool
	}{
		{name: "simple name", value: "Gadget", want: true},
		{name: "qualified name", value: "Acme.Widgets.Gadget", want: true},
		{name: "leading separator", value: ".Acme.Gadget", want: true},
		{name: "underscore tail", value: "Acme.My_Widget", want: true},
		{name: "empty string", value: "", want: false},
		{name: "whitespace only", value: "   ", want: false},
		{name: "bare separator", value: ".", want: false},
		{name: "forward slash", value: "Acme/Gadget", want: false},
		{name: "backslash", value: `Acme\Gadget`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, errs := tt.value.IsValid()
			if got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
			if !tt.want {
				if len(errs) == 0 {
					t.Fatal("IsValid() returned no errors for invalid name")
				}
				if !errors.Is(errs[0], symbol.ErrInvalidName) {
					t.Errorf("error %v does not wrap ErrInvalidName", errs[0])
				}
			}
		})
	}
}

func TestName_Canonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value symbol.Name
		want  string
	}{
		{name: "lower-cases", value: "Acme.Widgets.Gadget", want: "acme.widgets.gadget"},
		{name: "strips leading separator", value: ".Acme.Gadget", want: "acme.gadget"},
		{name: "already canonical", value: "acme.gadget", want: "acme.gadget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.Canonical(); got != tt.want {
				t.Errorf("Canonical() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestName_Split(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		value         symbol.Name
		wantNamespace string
		wantTail      string
	}{
		{name: "qualified", value: "Acme.Widgets.Gadget", wantNamespace: "Acme.Widgets.", wantTail: "Gadget"},
		{name: "single level", value: "Acme.Gadget", wantNamespace: "Acme.", wantTail: "Gadget"},
		{name: "unqualified", value: "Gadget", wantNamespace: "", wantTail: "Gadget"},
		{name: "leading separator ignored", value: ".Acme.Gadget", wantNamespace: "Acme.", wantTail: "Gadget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ns, tail := tt.value.Split()
			if ns != tt.wantNamespace || tail != tt.wantTail {
				t.Errorf("Split() = (%q, %q), want (%q, %q)", ns, tail, tt.wantNamespace, tt.wantTail)
			}
		})
	}
}

func TestName_TailPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value symbol.Name
		want  string
	}{
		{name: "plain tail", value: "Acme.Gadget", want: "Gadget"},
		{name: "underscore becomes boundary", value: "Acme.My_Widget", want: "My/Widget"},
		{name: "multiple underscores", value: "Acme.A_B_C", want: "A/B/C"},
		// Underscores before the last separator stay untouched.
		{name: "namespace underscores untouched", value: "Acme_Co.Gadget", want: "Gadget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.TailPath(); got != tt.want {
				t.Errorf("TailPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
