// SPDX-License-Identifier: MPL-2.0

// Package diag defines the structured diagnostics emitted by the resolver
// core. Every failure in the core is reported through a Sink as a warning
// rather than surfaced as a fatal error; callers decide how diagnostics are
// rendered.
package diag

import (
	"log/slog"
)

const (
	// SeverityWarning indicates a recoverable resolution warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal resolution error diagnostic.
	SeverityError Severity = "error"
)

const (
	// CodeDirectoryNotFound reports a namespace or modules-root registration
	// against a directory that does not exist.
	CodeDirectoryNotFound = "directory_not_found"
	// CodeNameNotFound reports a symbolic name with no registered mapping
	// and no probed file on disk.
	CodeNameNotFound = "name_not_found"
	// CodeDeclaredNameMismatch reports a unit file that was located and
	// loaded but did not declare the expected name.
	CodeDeclaredNameMismatch = "declared_name_mismatch"
	// CodeUnitLoadFailed reports a failure inside the environment's load
	// primitive while executing a located unit file.
	CodeUnitLoadFailed = "unit_load_failed"
	// CodeManifestParseError reports a mapping manifest that could not be
	// parsed; its entries are skipped.
	CodeManifestParseError = "manifest_parse_error"
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// Diagnostic represents a structured resolution diagnostic that is
	// passed to a Sink (rather than written to stderr) for consistent
	// rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "name_not_found").
		Code string
		// Message is the human-readable description.
		Message string
		// Symbol is the symbolic name associated with this diagnostic (optional).
		Symbol string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Trace is a formatted call-stack trace captured at the emit site (optional).
		Trace string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}

	// Sink receives diagnostics. Implementations must not panic and must
	// not abort the calling program.
	Sink interface {
		Report(d Diagnostic)
	}

	// SinkFunc adapts a function to the Sink interface.
	SinkFunc func(d Diagnostic)

	slogSink struct {
		logger *slog.Logger
	}
)

// Report implements the Sink interface.
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// NewSlogSink returns a Sink that forwards diagnostics to logger at warn
// level. A nil logger uses slog.Default().
func NewSlogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogSink{logger: logger}
}

// Report implements the Sink interface.
func (s *slogSink) Report(d Diagnostic) {
	attrs := []any{"code", d.Code}
	if d.Symbol != "" {
		attrs = append(attrs, "symbol", d.Symbol)
	}
	if d.Path != "" {
		attrs = append(attrs, "path", d.Path)
	}
	if d.Cause != nil {
		attrs = append(attrs, "error", d.Cause)
	}
	s.logger.Warn(d.Message, attrs...)
}
