package interp

import "context"

// builtinVwait implements `vwait varName` (spec §5 "Suspension points":
// "vwait drives the host's event loop until a watched variable is
// written"). The engine has no variable-trace table of its own (spec §6
// lists traces as a host callback concern), so the watched condition is
// approximated by snapshotting the variable's current serialized form and
// asking the host to keep pumping its event loop until that form changes.
func builtinVwait(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) != 2 {
		return CodeError, nil, wrongArgs(formatUsage("vwait", "varName"))
	}
	name := argv[1].String()
	before := ""
	if v, err := it.current.GetScalar(name); err == nil {
		before = v.String()
	}
	changed := func() bool {
		v, err := it.current.GetScalar(name)
		return err == nil && v.String() != before
	}
	if _, err := it.host.RunEventLoop(context.Background(), EventLoopUntilCondition, changed); err != nil {
		return CodeError, nil, err
	}
	return CodeOK, NewString(""), nil
}

// builtinUpdate implements `update ?idletasks?` (spec §5: "update/update
// idletasks run the event loop until no event is pending"). Both forms
// drain the host's queue; feather draws no distinction between idle and
// non-idle event classes, since the host callback table (spec §6) exposes
// a single undifferentiated event loop.
func builtinUpdate(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) > 2 {
		return CodeError, nil, wrongArgs(formatUsage("update", "?idletasks?"))
	}
	if len(argv) == 2 && argv[1].String() != "idletasks" {
		return CodeError, nil, newError(ErrBadOption, "bad option %q: must be idletasks", argv[1].String())
	}
	if _, err := it.host.RunEventLoop(context.Background(), EventLoopDrain, nil); err != nil {
		return CodeError, nil, err
	}
	return CodeOK, NewString(""), nil
}
