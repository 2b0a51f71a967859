package interp

import "strings"

// runScript drives one script body to completion (spec §4.3 "Stepping
// contract"): push a script frame, iterate its commands with an explicit
// index rather than Go-call recursion, and stop as soon as a command
// yields anything other than OK. Nested control-flow bodies (if/while/
// proc calls) invoke runScript again for their own body, bounded by
// source nesting depth rather than by total execution length — the
// yield-counting replay mechanism (coroutine.go) is what makes that
// acceptable: suspension unwinds through these calls exactly like an
// error would, and resuming simply starts a fresh runScript from the top
// rather than needing to restore a saved machine stack (spec §9 "Recursion
// vs explicit stack").
func (it *Interp) runScript(frame *Frame, script *astNode) (Code, *Value, error) {
	prev := it.current
	it.current = frame
	defer func() { it.current = prev }()

	it.arena.Push()
	defer it.arena.Pop()

	result := NewString("")
	idx := 0
	n := len(script.commands)
	for idx < n {
		cmd := script.commands[idx]
		code, v, err := it.evalCommand(frame, cmd)
		if err != nil {
			if ee, ok := err.(*EngineError); ok && ee.Line == 0 {
				ee.Line = cmd.line
			}
			if ee, ok := err.(*EngineError); ok {
				ee.ErrorInfo += "\n    while executing\n\"" + renderCommandSource(cmd) + "\""
			}
			return CodeError, nil, err
		}
		switch code {
		case CodeOK:
			result = v
			idx++
		default:
			// RETURN / BREAK / CONTINUE / YIELD: unwind this script
			// immediately, leaving resumption to the caller (a loop
			// builtin, a proc-call frame, or the top-level Eval).
			return code, v, nil
		}
	}
	return CodeOK, result, nil
}

// evalCommand substitutes a command's words into an argument vector,
// splicing {*}-expanded words, and dispatches it.
func (it *Interp) evalCommand(frame *Frame, cmd *astNode) (Code, *Value, error) {
	var argv []*Value
	for _, w := range cmd.words {
		if w.kind == nExpand {
			v, code, err := it.evalWordNode(frame, w.inner)
			if err != nil {
				return CodeError, nil, err
			}
			if code != CodeOK {
				return code, v, nil
			}
			elems, err := v.AsList()
			if err != nil {
				return CodeError, nil, err
			}
			argv = append(argv, elems...)
			continue
		}
		v, code, err := it.evalWordNode(frame, w)
		if err != nil {
			return CodeError, nil, err
		}
		if code != CodeOK {
			return code, v, nil
		}
		argv = append(argv, v)
	}
	if len(argv) == 0 {
		return CodeOK, NewString(""), nil
	}
	return it.dispatch(frame, argv, cmd.line)
}

// evalWordNode evaluates one word-tree node to a value (spec §4.3 "Word
// evaluation"): parts are concatenated left-to-right, and a single-part
// word (the common case) returns that part's value directly rather than
// a rebuilt string, preserving its typed form for later reinterpretation.
func (it *Interp) evalWordNode(frame *Frame, node *astNode) (*Value, Code, error) {
	switch node.kind {
	case nLiteral, nBackslash:
		return NewString(node.text), CodeOK, nil

	case nSimpleVar:
		v, err := frame.GetScalar(node.name)
		if err != nil {
			return nil, CodeError, err
		}
		return v, CodeOK, nil

	case nArrayVar:
		idx, code, err := it.evalWordNode(frame, node.index)
		if err != nil {
			return nil, CodeError, err
		}
		if code != CodeOK {
			return idx, code, nil
		}
		v, err := frame.GetArrayElem(node.name, idx.String())
		if err != nil {
			return nil, CodeError, err
		}
		return v, CodeOK, nil

	case nCmdSubst:
		code, v, err := it.runScript(frame, node.body)
		if err != nil {
			return nil, CodeError, err
		}
		if code != CodeOK {
			return v, code, nil
		}
		return v, CodeOK, nil

	case nWord:
		var b strings.Builder
		for _, p := range node.parts {
			v, code, err := it.evalWordNode(frame, p)
			if err != nil {
				return nil, CodeError, err
			}
			if code != CodeOK {
				return v, code, nil
			}
			b.WriteString(v.String())
		}
		return NewString(b.String()), CodeOK, nil

	default:
		return NewString(""), CodeOK, nil
	}
}

// renderCommandSource best-effort reconstructs a command's literal source
// for errorInfo ("while executing ..."), joining each word's literal text
// where available and a placeholder for substituted parts.
func renderCommandSource(cmd *astNode) string {
	parts := make([]string, len(cmd.words))
	for i, w := range cmd.words {
		parts[i] = renderWordSource(w)
	}
	return strings.Join(parts, " ")
}

func renderWordSource(w *astNode) string {
	switch w.kind {
	case nLiteral, nBackslash:
		return w.text
	case nSimpleVar:
		return "$" + w.name
	case nArrayVar:
		return "$" + w.name + "(" + renderWordSource(w.index) + ")"
	case nCmdSubst:
		return "[...]"
	case nExpand:
		return "{*}" + renderWordSource(w.inner)
	case nWord:
		var b strings.Builder
		for _, p := range w.parts {
			b.WriteString(renderWordSource(p))
		}
		return b.String()
	default:
		return ""
	}
}

// runScriptSource parses and runs src as a nested script against frame,
// the primitive behind control-flow builtins (if/while/for/foreach/eval)
// whose bodies arrive as unevaluated brace-quoted text.
func (it *Interp) runScriptSource(frame *Frame, src string) (Code, *Value, error) {
	script, err := Parse(src)
	if err != nil {
		return CodeError, nil, err
	}
	return it.runScript(frame, script.root)
}
