package interp

import "context"

// EventLoopMode selects how long RunEventLoop should drive the host's event
// loop (spec §5: "vwait drives the host's event loop until a watched
// variable is written"; "update/update idletasks run the event loop until
// no event is pending").
type EventLoopMode int

const (
	// EventLoopUntilCondition runs until the supplied predicate reports
	// true (used by vwait to watch a variable write via a trace).
	EventLoopUntilCondition EventLoopMode = iota
	// EventLoopDrain runs until no event is pending (update/update
	// idletasks).
	EventLoopDrain
)

// Host is the single well-defined callback interface through which the
// engine reaches everything explicitly out of scope per spec §1: I/O
// channels, subprocess spawning, sockets, filesystem, clocks, regex, glob
// matching, timers, and the event loop. The value model, scope model, and
// command dispatch are implemented directly by the engine (design notes:
// "in GC'd languages the cells can be plain fields") and therefore do not
// appear here; Host is deliberately narrow to the true external boundary.
type Host interface {
	// InvokeExtension forwards an argument vector to a host-registered
	// extension command (spec §4.5 "Extension invocation"). The host owns
	// thread-safety and may return any completion code.
	InvokeExtension(ctx context.Context, name string, args []*Value) (Code, *Value, error)

	// RunEventLoop drives the host's event loop per mode, returning once
	// the condition is satisfied (EventLoopUntilCondition) or the queue is
	// drained (EventLoopDrain). done reports whether the await condition
	// was (or, for Drain, always is) satisfied.
	RunEventLoop(ctx context.Context, mode EventLoopMode, condition func() bool) (done bool, err error)
}

// NopHost is a Host with no registered extensions and an event loop that
// never blocks — useful for embedding contexts (and most tests) that never
// touch `vwait`, `update`, or extension commands.
type NopHost struct{}

func (NopHost) InvokeExtension(_ context.Context, name string, _ []*Value) (Code, *Value, error) {
	return CodeError, nil, newError(ErrNameNotFound, "invalid command name %q", name)
}

func (NopHost) RunEventLoop(_ context.Context, mode EventLoopMode, condition func() bool) (bool, error) {
	if mode == EventLoopDrain {
		return true, nil
	}
	if condition != nil && condition() {
		return true, nil
	}
	return false, newError(ErrHostFailure, "vwait: no event loop available to await a variable write")
}
