package interp

// builtinError implements `error message ?errorInfo? ?errorCode?` (spec
// §7): raises CodeError carrying an EngineError whose fields catch/try
// expose via the `-code`/`-errorinfo`/`-errorcode` option dict.
func builtinError(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 2 || len(argv) > 4 {
		return CodeError, nil, wrongArgs(formatUsage("error", "message ?errorInfo? ?errorCode?"))
	}
	ee := newError(ErrUser, "%s", argv[1].String())
	if len(argv) >= 3 {
		ee.ErrorInfo = argv[2].String()
	}
	if len(argv) == 4 {
		ee.ErrorCode = argv[3]
	}
	return CodeError, nil, ee
}

// builtinCatch implements `catch script ?resultVar? ?optionsVar?` (spec
// §7): runs script, turns any completion code into an integer, and
// populates the global `errorInfo`/`errorCode` introspection variables
// when the absorbed code was ERROR.
func builtinCatch(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 2 || len(argv) > 4 {
		return CodeError, nil, wrongArgs(formatUsage("catch", "script ?resultVarName? ?optionsVarName?"))
	}

	code, v, err := it.runScriptSource(it.current, argv[1].String())
	var resultVal *Value
	var ee *EngineError

	if err != nil {
		code = CodeError
		if asEE, ok := err.(*EngineError); ok {
			ee = asEE
			resultVal = NewString(ee.Message)
		} else {
			ee = newError(ErrHostFailure, "%s", err.Error())
			resultVal = NewString(err.Error())
		}
		it.global.SetScalar("errorInfo", NewString(ee.ErrorInfo))
		errCode := ee.ErrorCode
		if errCode == nil {
			errCode = NewString(ee.Kind.String())
		}
		it.global.SetScalar("errorCode", errCode)
	} else {
		resultVal = v
	}

	if len(argv) >= 3 {
		if err := it.current.SetScalar(argv[2].String(), resultVal); err != nil {
			return CodeError, nil, err
		}
	}
	if len(argv) == 4 {
		opts := NewEmptyDict()
		opts.Set("-code", NewInt(int64(code)))
		if ee != nil {
			opts.Set("-errorinfo", NewString(ee.ErrorInfo))
			errCode := ee.ErrorCode
			if errCode == nil {
				errCode = NewString(ee.Kind.String())
			}
			opts.Set("-errorcode", errCode)
		}
		if err := it.current.SetScalar(argv[3].String(), NewDict(opts)); err != nil {
			return CodeError, nil, err
		}
	}
	return CodeOK, NewInt(int64(code)), nil
}

// builtinTry implements a subset of `try body ?on code varList handler?...
// ?finally body?` (spec §7): `on` handlers match by completion code name
// or integer; `trap` handlers match by error-code prefix; `finally`
// always runs and a failure there takes precedence over the body's own
// outcome.
func builtinTry(it *Interp, argv []*Value) (Code, *Value, error) {
	if len(argv) < 2 {
		return CodeError, nil, wrongArgs(formatUsage("try", "body ?handler ...? ?finally script?"))
	}
	body := argv[1]
	rest := argv[2:]

	code, v, err := it.runScriptSource(it.current, body.String())
	var ee *EngineError
	if err != nil {
		code = CodeError
		if asEE, ok := err.(*EngineError); ok {
			ee = asEE
		} else {
			ee = newError(ErrHostFailure, "%s", err.Error())
		}
		v = NewString(ee.Message)
	}

	handled := false
	var handlerCode Code
	var handlerVal *Value
	var handlerErr error

	i := 0
	for i < len(rest) {
		kind := rest[i].String()
		switch kind {
		case "on":
			if i+4 > len(rest) {
				return CodeError, nil, wrongArgs("try ... on code varList script")
			}
			if !handled && matchesCompletionCode(rest[i+1].String(), code) {
				handled = true
				handlerCode, handlerVal, handlerErr = runTryHandler(it, rest[i+2], rest[i+3], code, v, ee)
			}
			i += 4
		case "trap":
			if i+4 > len(rest) {
				return CodeError, nil, wrongArgs("try ... trap pattern varList script")
			}
			if !handled && code == CodeError && ee != nil && ee.ErrorCode != nil &&
				matchesErrorCodePrefix(rest[i+1], ee.ErrorCode) {
				handled = true
				handlerCode, handlerVal, handlerErr = runTryHandler(it, rest[i+2], rest[i+3], code, v, ee)
			}
			i += 4
		case "finally":
			if i+2 != len(rest) {
				return CodeError, nil, wrongArgs("try ... finally script")
			}
			fc, fv, ferr := it.runScriptSource(it.current, rest[i+1].String())
			if ferr != nil {
				return CodeError, nil, ferr
			}
			if fc != CodeOK {
				return fc, fv, nil
			}
			i += 2
		default:
			return CodeError, nil, newError(ErrBadOption, "invalid try handler %q", kind)
		}
	}

	if handled {
		if handlerErr != nil {
			return CodeError, nil, handlerErr
		}
		return handlerCode, handlerVal, nil
	}
	if code == CodeError {
		return CodeError, nil, ee
	}
	return code, v, nil
}

func runTryHandler(it *Interp, varList, script *Value, code Code, v *Value, ee *EngineError) (Code, *Value, error) {
	names, err := varList.AsList()
	if err != nil {
		return CodeError, nil, err
	}
	if len(names) >= 1 {
		it.current.SetScalar(names[0].String(), v)
	}
	if len(names) >= 2 {
		opts := NewEmptyDict()
		opts.Set("-code", NewInt(int64(code)))
		if ee != nil {
			opts.Set("-errorinfo", NewString(ee.ErrorInfo))
			errCode := ee.ErrorCode
			if errCode == nil {
				errCode = NewString(ee.Kind.String())
			}
			opts.Set("-errorcode", errCode)
		}
		it.current.SetScalar(names[1].String(), NewDict(opts))
	}
	return it.runScriptSource(it.current, script.String())
}

func matchesCompletionCode(name string, code Code) bool {
	switch name {
	case "ok":
		return code == CodeOK
	case "error":
		return code == CodeError
	case "return":
		return code == CodeReturn
	case "break":
		return code == CodeBreak
	case "continue":
		return code == CodeContinue
	default:
		n, err := parseTclInt(name)
		return err == nil && Code(n) == code
	}
}

func matchesErrorCodePrefix(pattern, errorCode *Value) bool {
	patElems, err := pattern.AsList()
	if err != nil {
		return false
	}
	codeElems, err := errorCode.AsList()
	if err != nil {
		return false
	}
	if len(patElems) > len(codeElems) {
		return false
	}
	for i, p := range patElems {
		if p.String() != codeElems[i].String() {
			return false
		}
	}
	return true
}
