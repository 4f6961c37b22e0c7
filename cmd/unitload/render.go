// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"unitload/internal/diag"
	"unitload/internal/issue"

	"github.com/charmbracelet/log"
)

// logSink renders resolution diagnostics to the terminal via
// charmbracelet/log. Diagnostics are structured data; this is the only
// place in the CLI that turns them into user-visible text.
type logSink struct {
	logger  *log.Logger
	verbose bool
}

// NewLogSink creates a diag.Sink that writes styled log lines to w.
// When verbose is true, captured call traces are included.
func NewLogSink(w io.Writer, verbose bool) diag.Sink {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return &logSink{logger: logger, verbose: verbose}
}

// Report implements diag.Sink.
func (s *logSink) Report(d diag.Diagnostic) {
	kv := make([]any, 0, 8)
	kv = append(kv, "code", d.Code)
	if d.Symbol != "" {
		kv = append(kv, "name", d.Symbol)
	}
	if d.Path != "" {
		kv = append(kv, "path", d.Path)
	}
	if d.Cause != nil {
		kv = append(kv, "cause", d.Cause)
	}

	switch d.Severity {
	case diag.SeverityError:
		s.logger.Error(d.Message, kv...)
	default:
		s.logger.Warn(d.Message, kv...)
	}

	if s.verbose && d.Trace != "" {
		s.logger.Debug("call trace\n" + d.Trace)
	}
}

// renderIssuePage writes the catalog page attached to err, if any. Errors
// built with issue.ErrorContext carry an issue id linking them to the
// Markdown page that explains the failure mode.
func renderIssuePage(err error, w io.Writer) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	page := ae.Issue()
	if page == nil {
		return
	}
	if rendered, rerr := page.Render("dark"); rerr == nil {
		fmt.Fprint(w, rendered)
	}
}
