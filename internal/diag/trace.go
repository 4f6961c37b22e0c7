// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"
	"runtime"
	"strings"
)

// traceDepth bounds how many frames a captured trace carries. Resolution
// failures happen close to the reference site; deep frames add noise.
const traceDepth = 16

// CaptureTrace formats the current call stack, skipping skip frames above
// the caller of CaptureTrace itself. Runtime-internal frames are elided.
func CaptureTrace(skip int) string {
	pcs := make([]uintptr, traceDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&sb, "  %s\n    %s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
