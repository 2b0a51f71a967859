package interp

import "github.com/google/uuid"

// coroState is a coroutine's lifecycle stage (spec §4.7 state machine).
type coroState int

const (
	coroCreated coroState = iota
	coroRunning
	coroSuspended
	coroDone
)

// loopSite identifies one textual while/for/foreach, used as the key for
// replay's loop-state stack (spec §4.7 "Loop-state stack"): the astNode
// for a loop's body is the same pointer across every replay of a given
// proc body (the AST is parsed once and reused), so it is a stable
// identity for "how many iterations of this loop already completed
// before the last suspend".
type loopSite = *astNode

// Coroutine is the engine's suspendable command-like entity (spec §4.7).
type Coroutine struct {
	name  string
	it    *Interp
	host  *Frame // coroutine's own activation frame, parent = global
	body  *Script
	proc  *procDef // the proc whose body the coroutine runs

	state coroState

	yieldCount  int
	yieldTarget int

	resumeValue *Value
	lastValue   *Value

	// completedIters records, per loop site, how many leading iterations
	// were fully executed before the coroutine's most recent suspend —
	// replay skips straight past them instead of re-running their bodies,
	// avoiding the side-effect repetition the plain replay-from-top
	// strategy would otherwise cause (spec §4.7 correctness caveat).
	completedIters map[loopSite]int
	// iterSeen is rebuilt fresh on every run to count iterations actually
	// reached this pass, becoming the next run's completedIters once a
	// real (non-replay) yield is reached inside that loop.
	iterSeen map[loopSite]int
}

// newCoroutine creates a coroutine named name that runs proc's body (spec
// §4.7 "First invocation"). Only procs can be wrapped: builtinCoroutine
// rejects any command name that is not a proc, builtins included.
func newCoroutine(it *Interp, name string, proc *procDef) *Coroutine {
	return &Coroutine{
		name:           name,
		it:             it,
		proc:           proc,
		completedIters: map[loopSite]int{},
	}
}

// anonymousCoroutineName generates a unique name for `coroutine {}` or
// similar anonymous forms, using google/uuid the way SPEC_FULL.md §B
// wires it in.
func anonymousCoroutineName() string {
	return "::coro::" + uuid.NewString()
}

// start runs the coroutine body for the first time (spec §4.7 "First
// invocation"): a fresh frame parented at global, depth 1, flags
// proc|coroutine-base. Returns the coroutine's first observable value
// (either its first yield, or its final return value if it completes
// without yielding).
func (c *Coroutine) start(argv []*Value) (*Value, error) {
	c.host = c.it.global.NewChildFrame(flagProc | flagCoroutineBase)
	c.host.procName = c.name
	c.host.argv = argv
	c.state = coroRunning
	c.yieldCount = 0
	c.yieldTarget = 0
	c.resumeValue = NewString("")
	c.iterSeen = map[loopSite]int{}

	if err := bindProcArgs(c.host, c.proc, argv); err != nil {
		c.state = coroDone
		return nil, err
	}

	return c.run()
}

// resume re-enters the coroutine body from the top, replaying past yields
// by counting (spec §4.7 "Resume").
func (c *Coroutine) resume(value *Value) (*Value, error) {
	if c.state == coroDone {
		return nil, newError(ErrNameNotFound, "invalid command name %q", c.name)
	}
	c.yieldTarget = c.yieldCount
	c.yieldCount = 0
	c.resumeValue = value
	c.completedIters = c.iterSeen
	c.iterSeen = map[loopSite]int{}
	c.state = coroRunning
	c.it.emit(TraceEvent{Kind: "coro-resume", Name: c.name})
	return c.run()
}

func (c *Coroutine) run() (*Value, error) {
	prevCoro := c.it.currentCoro
	c.it.currentCoro = c
	defer func() { c.it.currentCoro = prevCoro }()

	code, v, err := c.it.runScript(c.host, c.body.root)
	if err != nil {
		c.state = coroDone
		c.it.emit(TraceEvent{Kind: "coro-done", Name: c.name, Err: err})
		return nil, err
	}
	switch code {
	case CodeYield:
		c.state = coroSuspended
		c.lastValue = v
		c.it.emit(TraceEvent{Kind: "coro-suspend", Name: c.name})
		return v, nil
	default:
		c.state = coroDone
		c.lastValue = v
		c.it.emit(TraceEvent{Kind: "coro-done", Name: c.name})
		return v, nil
	}
}

// yield implements `yield ?value?` (spec §4.7 "Yield"): during replay
// (yieldCount < yieldTarget) it returns the resume value without
// suspending; otherwise it suspends, surfacing value to the resumer.
func (c *Coroutine) yield(value *Value) (*Value, Code, error) {
	if c.yieldCount < c.yieldTarget {
		c.yieldCount++
		return c.resumeValue, CodeOK, nil
	}
	c.yieldCount++
	c.lastValue = value
	return value, CodeYield, nil
}

// isReplaying reports whether the coroutine is still fast-forwarding
// through previously-reached yields.
func (c *Coroutine) isReplaying() bool {
	return c.yieldCount < c.yieldTarget
}

// loopIterationsToSkip reports how many leading iterations of the loop at
// site were already completed as of the last suspend, while the
// coroutine is still replaying. Loop builtins call this once per loop
// entry and silently advance their iteration cursor/variables past that
// many iterations without invoking the body.
func (c *Coroutine) loopIterationsToSkip(site loopSite) int {
	if !c.isReplaying() {
		return 0
	}
	return c.completedIters[site]
}

// recordIterationComplete marks one more iteration of the loop at site as
// having finished without suspending, extending the skip count a future
// suspend-and-resume would use.
func (c *Coroutine) recordIterationComplete(site loopSite) {
	c.iterSeen[site]++
}
