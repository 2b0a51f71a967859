package interp

// builtinGlobal implements `global varName ...` (spec §4.6): links each
// name in the current frame to the same name in the global frame.
func builtinGlobal(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 2 {
		return CodeError, nil, wrongArgs(formatUsage("global", "varName ?varName ...?"))
	}
	if it.current.IsGlobal() {
		return CodeOK, NewString(""), nil
	}
	for _, a := range argv[1:] {
		name := a.String()
		if err := it.current.Link(name, it.global, name); err != nil {
			return CodeError, nil, err
		}
	}
	return CodeOK, NewString(""), nil
}

// builtinUpvar implements `upvar ?level? otherVar myVar ?otherVar myVar ...?`
// (spec §4.6). level defaults to 1 (caller's frame); `#N` selects an
// absolute level counted from the global frame.
func builtinUpvar(it *Interp, argv []*Value) (Code, *Value, error) {
	args := argv[1:]
	if len(args) < 2 {
		return CodeError, nil, wrongArgs(formatUsage("upvar", "?level? otherVar myVar ?otherVar myVar ...?"))
	}

	target := it.current.parent
	if len(args)%2 != 0 {
		t, err := resolveUpvarLevel(it.current, args[0].String())
		if err != nil {
			return CodeError, nil, err
		}
		target = t
		args = args[1:]
	}
	if len(args)%2 != 0 || len(args) == 0 || target == nil {
		return CodeError, nil, wrongArgs(formatUsage("upvar", "?level? otherVar myVar ?otherVar myVar ...?"))
	}

	for i := 0; i+1 < len(args); i += 2 {
		otherName, myName := args[i].String(), args[i+1].String()
		if err := it.current.Link(myName, target, otherName); err != nil {
			return CodeError, nil, err
		}
	}
	return CodeOK, NewString(""), nil
}

// resolveUpvarLevel resolves the `?level?` argument: `#N` is absolute
// (counted from the global frame), a bare integer is relative to current.
func resolveUpvarLevel(current *Frame, s string) (*Frame, error) {
	if len(s) > 0 && s[0] == '#' {
		n, err := parseTclInt(s[1:])
		if err != nil {
			return nil, newError(ErrSyntax, "bad level %q", s)
		}
		return FrameAtAbsoluteLevel(current, int(n))
	}
	n, err := parseTclInt(s)
	if err != nil || n < 0 {
		return nil, newError(ErrSyntax, "bad level %q", s)
	}
	return FrameAtRelativeLevel(current, int(n))
}

// builtinInfo implements a minimal `info exists|commands|vars|procs`
// (SPEC_FULL.md §C introspection).
func builtinInfo(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 2 {
		return CodeError, nil, wrongArgs(formatUsage("info", "subcommand ?arg ...?"))
	}
	switch argv[1].String() {
	case "exists":
		if len(argv) != 3 {
			return CodeError, nil, wrongArgs(formatUsage("info exists", "varName"))
		}
		return CodeOK, NewBool(it.current.Exists(argv[2].String())), nil
	case "vars":
		pattern := ""
		if len(argv) == 3 {
			pattern = argv[2].String()
		}
		var names []*Value
		for _, n := range it.current.AllVisibleNames() {
			if pattern == "" || globMatch(pattern, n) {
				names = append(names, NewString(n))
			}
		}
		return CodeOK, NewList(names), nil
	case "procs":
		pattern := ""
		if len(argv) == 3 {
			pattern = argv[2].String()
		}
		var names []*Value
		for n := range it.procs {
			if pattern == "" || globMatch(pattern, n) {
				names = append(names, NewString(n))
			}
		}
		return CodeOK, NewList(names), nil
	case "commands":
		pattern := ""
		if len(argv) == 3 {
			pattern = argv[2].String()
		}
		var names []*Value
		for n := range it.builtins {
			if pattern == "" || globMatch(pattern, n) {
				names = append(names, NewString(n))
			}
		}
		for n := range it.procs {
			if pattern == "" || globMatch(pattern, n) {
				names = append(names, NewString(n))
			}
		}
		return CodeOK, NewList(names), nil
	case "coroutine":
		if len(argv) == 3 && argv[2].String() == "exists" {
			return CodeOK, NewBool(it.currentCoro != nil), nil
		}
		return CodeOK, NewString(""), nil
	default:
		return CodeError, nil, newError(ErrBadOption, "unknown or ambiguous subcommand %q", argv[1].String())
	}
}

// builtinDict implements the minimal `dict get|create|set|exists|keys`
// forms (SPEC_FULL.md §C) over a flat key-value list.
func builtinDict(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 2 {
		return CodeError, nil, wrongArgs(formatUsage("dict", "subcommand ?arg ...?"))
	}
	switch argv[1].String() {
	case "get":
		if len(argv) < 3 {
			return CodeError, nil, wrongArgs(formatUsage("dict get", "dictValue ?key ...?"))
		}
		d, err := argv[2].AsDict()
		if err != nil {
			return CodeError, nil, err
		}
		keys := argv[3:]
		for i, k := range keys {
			v, ok := d.Get(k.String())
			if !ok {
				return CodeError, nil, newError(ErrNameNotFound, "key %q not known in dictionary", k.String())
			}
			if i == len(keys)-1 {
				return CodeOK, v, nil
			}
			d, err = v.AsDict()
			if err != nil {
				return CodeError, nil, err
			}
		}
		return CodeOK, NewDict(d), nil
	case "create":
		d := NewEmptyDict()
		for i := 2; i+1 < len(argv); i += 2 {
			d.Set(argv[i].String(), argv[i+1])
		}
		return CodeOK, NewDict(d), nil
	case "set":
		if len(argv) < 5 {
			return CodeError, nil, wrongArgs(formatUsage("dict set", "varName key value"))
		}
		name := argv[2].String()
		var d *Dict
		if cur, err := it.current.GetScalar(name); err == nil {
			d, err = cur.AsDict()
			if err != nil {
				return CodeError, nil, err
			}
			d = d.clone()
		} else {
			d = NewEmptyDict()
		}
		d.Set(argv[3].String(), argv[4])
		v := NewDict(d)
		if err := it.current.SetScalar(name, v); err != nil {
			return CodeError, nil, err
		}
		return CodeOK, v, nil
	case "exists":
		if len(argv) != 4 {
			return CodeError, nil, wrongArgs(formatUsage("dict exists", "dictValue key"))
		}
		d, err := argv[2].AsDict()
		if err != nil {
			return CodeError, nil, err
		}
		_, ok := d.Get(argv[3].String())
		return CodeOK, NewBool(ok), nil
	case "keys":
		if len(argv) != 3 {
			return CodeError, nil, wrongArgs(formatUsage("dict keys", "dictValue"))
		}
		d, err := argv[2].AsDict()
		if err != nil {
			return CodeError, nil, err
		}
		var out []*Value
		for _, k := range d.Keys("") {
			out = append(out, NewString(k))
		}
		return CodeOK, NewList(out), nil
	default:
		return CodeError, nil, newError(ErrBadOption, "unknown or ambiguous subcommand %q", argv[1].String())
	}
}

