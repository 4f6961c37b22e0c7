// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the shared CUE parsing flow used by the config
// and unitfile packages: compile the embedded schema, unify it with the
// user's document, validate, and decode into a Go struct. Errors carry the
// CUE path of the offending field so users see "unit.name: ..." rather than
// a raw error chain.
package cueutil

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

// MaxFileSize bounds the size of any CUE document we parse. Unit and config
// files are small; anything larger is rejected before compilation.
const MaxFileSize = 1 << 20

// Decode compiles schema, unifies the definition at defPath with data, and
// decodes the validated result into T. filename is used in error messages
// only.
func Decode[T any](schema []byte, data []byte, defPath, filename string) (*T, error) {
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s: file exceeds %d bytes", filename, MaxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath(defPath))
	if def.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, def.Err())
	}

	doc := ctx.CompileBytes(data, cue.Filename(filename))
	if doc.Err() != nil {
		return nil, FormatError(doc.Err(), filename)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	return &out, nil
}

// FormatError rewrites a CUE error so each line reads
// "<file>: <json-path>: <message>".
func FormatError(err error, filename string) error {
	if err == nil {
		return nil
	}

	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}

	var lines []string
	for _, e := range cueErrs {
		path := jsonPath(errors.Path(e))
		msg := e.Error()
		// CUE sometimes repeats the path inside the message.
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		if path != "" {
			lines = append(lines, path+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filename, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filename, strings.Join(lines, "\n  "))
}

// jsonPath converts CUE's flat path slice (["unit", "0", "name"]) to the
// JSON-path notation users recognize ("unit[0].name").
func jsonPath(path []string) string {
	var sb strings.Builder
	for _, elem := range path {
		if _, err := strconv.Atoi(elem); err == nil {
			sb.WriteString("[" + elem + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(elem)
	}
	return sb.String()
}
