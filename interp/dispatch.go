package interp

import "context"

// builtinFunc implements a builtin command against the interpreter's
// current frame (it.current). argv[0] is the command name.
type builtinFunc func(it *Interp, argv []*Value) (Code, *Value, error)

// procArg is one formal parameter of a user procedure (spec §4.5).
type procArg struct {
	name    string
	hasDflt bool
	dflt    *Value
}

// procDef is a user-defined procedure (spec §4.5 "proc").
type procDef struct {
	name string
	args []procArg
	rest string // non-"" if the last formal is the literal `args`

	bodySrc  string // body source text, re-parsed on a cache miss
	cacheKey string // astCache key for this definition's parse (dispatch.go's procScript)
}

// aliasDef is a command-name redirection (spec §4.5 "alias redirection").
type aliasDef struct {
	target string
	prefix []*Value
}

// RegisterBuiltin installs a builtin command, usable by host embedders to
// extend the core command set without going through Host.InvokeExtension
// for commands that don't need host-side state.
func (it *Interp) RegisterBuiltin(name string, fn builtinFunc) {
	it.builtins[name] = fn
}

// RegisterAlias installs `name` as a redirect to target with a fixed
// argument prefix (spec §4.5).
func (it *Interp) RegisterAlias(name, target string, prefix []*Value) {
	it.aliases[name] = &aliasDef{target: target, prefix: prefix}
}

const maxRecursionDepthExceeded = "too many nested evaluations (infinite loop?)"

// dispatch resolves argv[0] and invokes it (spec §4.5 "Command dispatch
// sequence"): builtin table, then user procedure, then alias redirection,
// then a live coroutine invoked by name, then the host extension table;
// anything else fails with name-not-found.
func (it *Interp) dispatch(frame *Frame, argv []*Value, line int) (Code, *Value, error) {
	name := argv[0].String()
	it.emit(TraceEvent{Kind: "dispatch", Name: name, Line: line})

	if fn, ok := it.builtins[name]; ok {
		return it.invokeBuiltin(fn, argv)
	}
	if proc, ok := it.procs[name]; ok {
		return it.invokeProc(proc, argv)
	}
	if alias, ok := it.aliases[name]; ok {
		full := append(append([]*Value(nil), alias.prefix...), argv[1:]...)
		full = append([]*Value{NewString(alias.target)}, full...)
		return it.dispatch(frame, full, line)
	}
	if coro, ok := it.coros[name]; ok {
		return it.invokeCoroutine(coro, argv)
	}

	code, v, err := it.host.InvokeExtension(context.Background(), name, argv)
	if err != nil {
		return CodeError, nil, err
	}
	return code, v, nil
}

func (it *Interp) invokeBuiltin(fn builtinFunc, argv []*Value) (code Code, v *Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			code, v, err = CodeError, nil, &Panic{Value: r}
		}
	}()
	return fn(it, argv)
}

// procScript returns proc's parsed body, consulting the AST cache under
// proc's stable cacheKey so that every call after the first one reuses the
// same parse (spec §4.3: "repeated evaluation of the same procedure body
// does not re-parse"). A coroutine pins the returned *Script once at
// creation (builtins_coroutine.go) rather than re-resolving it on each
// resume, so later eviction-and-reparse of this cache entry for other
// callers never disturbs a running coroutine's loop-site pointers.
func (it *Interp) procScript(proc *procDef) (*Script, error) {
	return it.cache.getOrParse(proc.cacheKey, proc.bodySrc)
}

// invokeProc binds arguments per spec §4.5, pushes a child frame one
// deeper than the caller's, runs the body, and unwraps RETURN into OK
// (RETURN's payload becomes the call's result; it does not propagate
// further up, the same way BREAK/CONTINUE never escape a proc boundary
// uncaught).
func (it *Interp) invokeProc(proc *procDef, argv []*Value) (Code, *Value, error) {
	if it.arena.Depth() >= it.recursionLimit {
		return CodeError, nil, newError(ErrUser, maxRecursionDepthExceeded)
	}
	caller := it.current
	frame := caller.NewChildFrame(flagProc)
	frame.procName = proc.name
	frame.argv = argv

	if err := bindProcArgs(frame, proc, argv); err != nil {
		return CodeError, nil, err
	}

	script, err := it.procScript(proc)
	if err != nil {
		return CodeError, nil, err
	}
	code, v, err := it.runScript(frame, script.root)
	if err != nil {
		return CodeError, nil, err
	}
	switch code {
	case CodeReturn:
		return CodeOK, v, nil
	case CodeBreak:
		return CodeError, nil, newError(ErrUser, "invoked \"break\" outside of a loop")
	case CodeContinue:
		return CodeError, nil, newError(ErrUser, "invoked \"continue\" outside of a loop")
	default:
		return CodeOK, v, nil
	}
}

// bindProcArgs binds argv[1:] to proc's formals (spec §4.5): required
// positionals, positionals with defaults, and a trailing `args` that
// collects the remainder as a list.
func bindProcArgs(frame *Frame, proc *procDef, argv []*Value) error {
	args := argv[1:]
	nFormal := len(proc.args)
	nRequired := 0
	for _, a := range proc.args {
		if !a.hasDflt {
			nRequired++
		}
	}
	if proc.rest == "" && len(args) > nFormal {
		return wrongArgs(procUsage(proc))
	}
	if len(args) < nRequired {
		return wrongArgs(procUsage(proc))
	}

	i := 0
	for _, formal := range proc.args {
		if i < len(args) {
			frame.SetScalar(formal.name, args[i])
			i++
		} else if formal.hasDflt {
			frame.SetScalar(formal.name, formal.dflt)
		} else {
			return wrongArgs(procUsage(proc))
		}
	}
	if proc.rest != "" {
		rest := append([]*Value(nil), args[i:]...)
		frame.SetScalar(proc.rest, NewList(rest))
	}
	return nil
}

func procUsage(proc *procDef) string {
	usage := proc.name
	for _, a := range proc.args {
		if a.hasDflt {
			usage += " ?" + a.name + "?"
		} else {
			usage += " " + a.name
		}
	}
	if proc.rest != "" {
		usage += " ?" + proc.rest + " ...?"
	}
	return usage
}

// invokeCoroutine resumes a coroutine by name (spec §4.7): the first
// positional, if present, is passed as the resume value.
func (it *Interp) invokeCoroutine(c *Coroutine, argv []*Value) (Code, *Value, error) {
	var resumeVal *Value = NewString("")
	if len(argv) > 1 {
		resumeVal = argv[1]
	}
	v, err := c.resume(resumeVal)
	if err != nil {
		return CodeError, nil, err
	}
	return CodeOK, v, nil
}
