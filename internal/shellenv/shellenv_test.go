// SPDX-License-Identifier: MPL-2.0

package shellenv_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"unitload/internal/shellenv"
	"unitload/pkg/symbol"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestFuncIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "qualified", in: "Acme.Widgets.Gadget", want: "acme__widgets__gadget"},
		{name: "unqualified", in: "Gadget", want: "gadget"},
		{name: "leading separator", in: ".Acme.Gadget", want: "acme__gadget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := shellenv.FuncIdent(symbol.Name(tt.in)); got != tt.want {
				t.Errorf("FuncIdent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnvironment_LoadDeclaresFunctions(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	script := `
Acme__Widgets__Gadget() {
	echo "gadget invoked"
}
`
	path := writeScript(t, tmpDir, "Gadget.sh", script)

	env, err := shellenv.New(nil, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if env.Defined("Acme.Widgets.Gadget") {
		t.Fatal("Defined() = true before any load")
	}
	if err := env.Load(context.Background(), path); err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !env.Defined("Acme.Widgets.Gadget") {
		t.Error("Defined() = false after load")
	}
	if !env.Defined("acme.widgets.GADGET") {
		t.Error("Defined() must be case-insensitive")
	}
	if env.Defined("Acme.Widgets.Other") {
		t.Error("Defined() = true for an undeclared name")
	}
}

func TestEnvironment_SharedInterpreterState(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	first := writeScript(t, tmpDir, "First.sh", `
Acme__First() { echo first; }
ACME_SHARED=set
`)
	second := writeScript(t, tmpDir, "Second.sh", `
Acme__Second() { echo second; }
echo "shared=$ACME_SHARED"
`)

	var out bytes.Buffer
	env, err := shellenv.New(&out, &out)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if err := env.Load(context.Background(), first); err != nil {
		t.Fatalf("Load(first) returned error: %v", err)
	}
	if err := env.Load(context.Background(), second); err != nil {
		t.Fatalf("Load(second) returned error: %v", err)
	}

	if !strings.Contains(out.String(), "shared=set") {
		t.Errorf("units must share interpreter state, got output:\n%s", out.String())
	}
	if !env.Defined("Acme.First") || !env.Defined("Acme.Second") {
		t.Error("Defined() lost declarations across loads")
	}
}

func TestEnvironment_LoadFailures(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	env, err := shellenv.New(nil, nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if err := env.Load(context.Background(), filepath.Join(tmpDir, "missing.sh")); err == nil {
		t.Error("Load() on missing file returned nil error")
	}

	broken := writeScript(t, tmpDir, "Broken.sh", "if then fi (")
	if err := env.Load(context.Background(), broken); err == nil {
		t.Error("Load() on unparsable script returned nil error")
	}

	failing := writeScript(t, tmpDir, "Failing.sh", `
Acme__Failing() { echo nope; }
exit 3
`)
	if err := env.Load(context.Background(), failing); err == nil {
		t.Error("Load() on script exiting non-zero returned nil error")
	}
}
