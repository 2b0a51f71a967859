// Package hostutil provides a minimal, sandboxed reference implementation
// of interp.Host: just enough extension dispatch and event-loop pumping to
// run the CLI and to exercise the host-interface boundary end to end. It is
// not a general-purpose host — no real I/O, subprocess, or socket support
// lives here, matching the engine's own narrow Host contract (interp/host.go).
package hostutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/feather-lang/feather/interp"
)

// ExtensionFunc implements one host-registered command (spec §4.5
// "Extension invocation").
type ExtensionFunc func(ctx context.Context, args []*interp.Value) (interp.Code, *interp.Value, error)

// Host is a reference interp.Host: an extension-command registry plus a
// FIFO event queue standing in for the host's real I/O/timer event sources.
// Safe for concurrent use; a single Host may back several interpreters.
type Host struct {
	mu         sync.Mutex
	extensions map[string]ExtensionFunc
	queue      []func()
}

// New returns an empty Host with no registered extensions.
func New() *Host {
	return &Host{extensions: map[string]ExtensionFunc{}}
}

// Register installs an extension command, reachable from script level once
// dispatch falls through builtins, procs, aliases, and live coroutines
// (spec §4.5 "Command dispatch sequence").
func (h *Host) Register(name string, fn ExtensionFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.extensions[name] = fn
}

// Post schedules fn to run on the next event-loop pump, standing in for a
// host-side timer firing or a channel becoming readable.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, fn)
}

// InvokeExtension implements interp.Host.
func (h *Host) InvokeExtension(ctx context.Context, name string, args []*interp.Value) (interp.Code, *interp.Value, error) {
	h.mu.Lock()
	fn, ok := h.extensions[name]
	h.mu.Unlock()
	if !ok {
		return interp.CodeError, nil, &interp.EngineError{
			Kind:    interp.ErrNameNotFound,
			Message: fmt.Sprintf("invalid command name %q", name),
		}
	}
	return fn(ctx, args)
}

// RunEventLoop implements interp.Host: it pumps queued callbacks one at a
// time (each may post further callbacks, e.g. a timer rescheduling itself),
// checking condition after every pump, until condition is satisfied
// (EventLoopUntilCondition) or the queue empties (EventLoopDrain).
func (h *Host) RunEventLoop(ctx context.Context, mode interp.EventLoopMode, condition func() bool) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		h.mu.Lock()
		if len(h.queue) == 0 {
			h.mu.Unlock()
			if mode == interp.EventLoopDrain {
				return true, nil
			}
			if condition != nil && condition() {
				return true, nil
			}
			return false, &interp.EngineError{
				Kind:    interp.ErrHostFailure,
				Message: "vwait: no event loop available to await a variable write",
			}
		}
		next := h.queue[0]
		h.queue = h.queue[1:]
		h.mu.Unlock()

		next()

		if condition != nil && condition() {
			return true, nil
		}
	}
}
