// SPDX-License-Identifier: MPL-2.0

// Package shellenv implements the unit-loading environment for shell unit
// files, executed in a persistent mvdan/sh interpreter. A shell unit
// declares a symbolic name by defining a function whose identifier is the
// name with each separator rewritten as "__" (shell function names cannot
// carry dots): "Acme.Widgets.Gadget" is declared by "Acme__Widgets__Gadget".
package shellenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"unitload/pkg/symbol"
)

// Environment loads shell unit files and tracks the functions they
// declare. Safe for concurrent use; unit scripts share one interpreter so
// later units can call into earlier ones.
type Environment struct {
	mu sync.Mutex

	parser *syntax.Parser
	runner *interp.Runner

	// declared holds canonical function identifiers seen in loaded units.
	declared map[string]string
}

// New creates an Environment writing unit output to stdout/stderr. Nil
// writers discard output.
func New(stdout, stderr io.Writer) (*Environment, error) {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	runner, err := interp.New(interp.StdIO(nil, stdout, stderr))
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}

	return &Environment{
		parser:   syntax.NewParser(),
		runner:   runner,
		declared: make(map[string]string),
	}, nil
}

// Extensions returns the probe order for shell units: POSIX first, then
// the bash and mksh dialects the interpreter also accepts.
func (e *Environment) Extensions() []string {
	return []string{".sh", ".bash", ".mksh"}
}

// Load parses and executes the unit script at path in the shared
// interpreter, then records every function it declares. A script that
// exits non-zero fails the load.
func (e *Environment) Load(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read unit script: %w", err)
	}
	defer f.Close()

	e.mu.Lock()
	defer e.mu.Unlock()

	prog, err := e.parser.Parse(f, path)
	if err != nil {
		return fmt.Errorf("failed to parse unit script: %w", err)
	}

	if err := e.runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) && exitStatus != 0 {
			return fmt.Errorf("unit script exited with status %d", int(exitStatus))
		}
		if !errors.As(err, &exitStatus) {
			return fmt.Errorf("unit script execution failed: %w", err)
		}
	}

	syntax.Walk(prog, func(node syntax.Node) bool {
		if decl, ok := node.(*syntax.FuncDecl); ok {
			e.declared[strings.ToLower(decl.Name.Value)] = path
		}
		return true
	})
	slog.Debug("Loaded shell unit.", "path", path)
	return nil
}

// Defined reports whether any loaded unit declared a function for name.
func (e *Environment) Defined(name symbol.Name) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.declared[FuncIdent(name)]
	return ok
}

// FuncIdent returns the canonical shell function identifier for a symbolic
// name.
func FuncIdent(name symbol.Name) string {
	return strings.ReplaceAll(name.Canonical(), symbol.Separator, "__")
}
