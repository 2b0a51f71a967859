package interp

// builtinCoroutine implements `coroutine name cmd ?arg ...?` (spec §4.7
// "First invocation"): creates and immediately runs the coroutine body up
// to its first yield (or completion), installing it under name for later
// resumption. Its own result is whatever that first run produced (the
// first yielded value, or the body's return value if it never yields).
func builtinCoroutine(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 3 {
		return CodeError, nil, wrongArgs(formatUsage("coroutine", "name cmd ?arg ...?"))
	}
	name := argv[1].String()
	if name == "" {
		name = anonymousCoroutineName()
	}
	if _, exists := it.coros[name]; exists {
		return CodeError, nil, newError(ErrNameCollision, "coroutine %q already exists", name)
	}

	cmdName := argv[2].String()
	proc, ok := it.procs[cmdName]
	if !ok {
		return CodeError, nil, newError(ErrNameNotFound, "invalid command name %q", cmdName)
	}

	script, err := it.procScript(proc)
	if err != nil {
		return CodeError, nil, err
	}
	c := newCoroutine(it, name, proc)
	c.body = script
	it.coros[name] = c

	cmdArgv := append([]*Value{NewString(cmdName)}, argv[3:]...)
	v, err := c.start(cmdArgv)
	if err != nil {
		delete(it.coros, name)
		return CodeError, nil, err
	}
	return CodeOK, v, nil
}

// builtinYield implements `yield ?value?` (spec §4.7 "Yield").
func builtinYield(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) > 2 {
		return CodeError, nil, wrongArgs(formatUsage("yield", "?value?"))
	}
	if it.currentCoro == nil {
		return CodeError, nil, newError(ErrUser, "yield can only be called inside a coroutine")
	}
	value := NewString("")
	if len(argv) == 2 {
		value = argv[1]
	}
	v, code, err := it.currentCoro.yield(value)
	if err != nil {
		return CodeError, nil, err
	}
	return code, v, nil
}

// builtinYieldto implements `yieldto command ?arg ...?` (spec §4.7
// "yieldto"): the yielded value is the result of invoking command first.
func builtinYieldto(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 2 {
		return CodeError, nil, wrongArgs(formatUsage("yieldto", "command ?arg ...?"))
	}
	if it.currentCoro == nil {
		return CodeError, nil, newError(ErrUser, "yieldto can only be called inside a coroutine")
	}
	code, v, err := it.dispatch(it.current, argv[1:], 0)
	if err != nil {
		return CodeError, nil, err
	}
	if code != CodeOK {
		return code, v, nil
	}
	yv, ycode, err := it.currentCoro.yield(v)
	if err != nil {
		return CodeError, nil, err
	}
	return ycode, yv, nil
}
