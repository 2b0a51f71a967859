package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/feather-lang/feather/interp"
)

// lipglossTrace styles dispatch/error/coroutine TraceEvents for terminal
// output (SPEC_FULL.md §A.2), standing in for the teacher's env-gated
// astDot/cfgDot dumps with colored single-line events instead.
var (
	dispatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	coroStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

// newLipglossTrace returns an interp.Trace that writes styled one-line
// event summaries to w. verbose additionally prints "dispatch" events,
// which are frequent enough to drown out everything else by default.
func newLipglossTrace(w io.Writer, verbose bool) interp.Trace {
	return func(ev interp.TraceEvent) {
		switch ev.Kind {
		case "dispatch":
			if verbose {
				fmt.Fprintln(w, dispatchStyle.Render(fmt.Sprintf("-> %s (line %d)", ev.Name, ev.Line)))
			}
		case "error":
			fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("!! %s: %v", ev.Name, ev.Err)))
		case "coro-suspend", "coro-resume", "coro-done":
			fmt.Fprintln(w, coroStyle.Render(fmt.Sprintf("~~ %s %s", ev.Kind, ev.Name)))
		}
	}
}
