package interp

import "strings"

// parser wraps the lexer and builds an AST (spec §4.2).
type parser struct {
	lx    *lexer
	arena *Arena
}

// Parse parses src into a Script. The returned arena is pushed once for the
// whole parse and left open; the caller (or the AST cache) is responsible
// for popping it when the script is no longer needed.
func Parse(src string) (*Script, error) {
	a := NewArena()
	a.Push()
	p := &parser{lx: newLexer(src), arena: a}
	root, err := p.parseScript(isTopLevel)
	if err != nil {
		a.Pop()
		return nil, err
	}
	return &Script{root: root, arena: a, src: src}, nil
}

// stopCondition tells parseScript when a nested script (command
// substitution body) should stop, versus the top-level script which runs to
// EOF.
type stopCondition int

const (
	isTopLevel stopCondition = iota
	isBracketed
)

func (p *parser) parseScript(stop stopCondition) (*astNode, error) {
	script := &astNode{kind: nScript, line: p.lx.line}
	for {
		p.skipSeparators()
		if p.lx.eof() {
			break
		}
		if stop == isBracketed && p.lx.peek() == ']' {
			p.lx.pos++
			break
		}
		if p.lx.atComment() {
			p.lx.skipCommentLine()
			continue
		}
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if cmd != nil {
			script.commands = append(script.commands, cmd)
		}
	}
	return script, nil
}

// skipSeparators consumes whitespace, backslash-newlines, true newlines,
// and semicolons between commands.
func (p *parser) skipSeparators() {
	for {
		p.lx.skipSpace()
		if p.lx.eof() {
			return
		}
		switch p.lx.peek() {
		case '\n':
			p.lx.pos++
			p.lx.line++
		case ';':
			p.lx.pos++
		default:
			return
		}
	}
}

func (p *parser) parseCommand() (*astNode, error) {
	startLine := p.lx.line
	cmd := &astNode{kind: nCommand, line: startLine}
	for {
		p.lx.skipSpace()
		if p.lx.eof() || p.lx.atCommandEnd() {
			break
		}
		if p.lx.peek() == ']' {
			break
		}
		lw, err := p.lx.nextWord()
		if err != nil {
			le := err.(*lexError)
			return nil, &EngineError{Kind: le.kind, Message: le.msg, Line: le.line}
		}
		word, err := p.buildWord(lw)
		if err != nil {
			return nil, err
		}
		cmd.words = append(cmd.words, word)
	}
	if len(cmd.words) == 0 {
		return nil, nil
	}
	return cmd, nil
}

// buildWord turns one lexed word into an nWord/nExpand/nLiteral node,
// decomposing bare and double-quoted words into substitution parts.
func (p *parser) buildWord(lw lexWord) (*astNode, error) {
	expand := false
	text := lw.text
	if lw.quote != quoteBrace && strings.HasPrefix(text, "{*}") {
		expand = true
		text = text[3:]
	}

	var word *astNode
	var err error
	switch lw.quote {
	case quoteBrace:
		word = &astNode{kind: nLiteral, text: resolveBackslashNewlinesOnly(text), line: lw.line}
	default:
		word, err = p.parseParts(text, lw.line)
		if err != nil {
			return nil, err
		}
	}

	if expand {
		return &astNode{kind: nExpand, inner: word, line: lw.line}, nil
	}
	return word, nil
}

// parseParts decomposes bare/double-quoted word text into a word node whose
// children are literal/var/cmd-subst/backslash parts (spec §4.2).
func (p *parser) parseParts(text string, line int) (*astNode, error) {
	var parts []*astNode
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, &astNode{kind: nLiteral, text: lit.String(), line: line})
			lit.Reset()
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch c {
		case '\\':
			if i+1 < len(text) {
				r, n := resolveBackslashAt(text[i:])
				lit.WriteRune(r)
				i += n
				continue
			}
			lit.WriteByte('\\')
			i++
		case '$':
			node, next, ok, err := p.parseVarRef(text, i, line)
			if err != nil {
				return nil, err
			}
			if !ok {
				lit.WriteByte('$')
				i++
				continue
			}
			flush()
			parts = append(parts, node)
			i = next
		case '[':
			flush()
			node, next, err := p.parseCmdSubst(text, i, line)
			if err != nil {
				return nil, err
			}
			parts = append(parts, node)
			i = next
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	if len(parts) == 1 && parts[0].kind == nLiteral {
		return parts[0], nil
	}
	if len(parts) == 0 {
		return &astNode{kind: nLiteral, text: "", line: line}, nil
	}
	if len(parts) == 1 {
		// Single substitution part: yield it directly (spec §4.3 "a
		// single-part word yields that part's value directly").
		return parts[0], nil
	}
	return &astNode{kind: nWord, parts: parts, line: line}, nil
}

func isNameByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == ':'
}

// parseVarRef parses a variable reference starting at text[i] == '$'. Returns
// ok=false if '$' is not followed by a valid reference (bare literal '$').
func (p *parser) parseVarRef(text string, i, line int) (*astNode, int, bool, error) {
	j := i + 1
	if j < len(text) && text[j] == '{' {
		end := strings.IndexByte(text[j+1:], '}')
		if end < 0 {
			return nil, 0, false, &EngineError{Kind: ErrSyntax, Message: "missing close-brace for variable name", Line: line}
		}
		name := text[j+1 : j+1+end]
		return &astNode{kind: nSimpleVar, name: name, line: line}, j + 1 + end + 1, true, nil
	}
	start := j
	for j < len(text) && isNameByte(text[j]) {
		j++
	}
	if j == start {
		return nil, 0, false, nil
	}
	name := text[start:j]
	if j < len(text) && text[j] == '(' {
		idxStart := j + 1
		end, err := findArrayIndexEnd(text, idxStart)
		if err != nil {
			return nil, 0, false, &EngineError{Kind: ErrSyntax, Message: err.Error(), Line: line}
		}
		idxWord, ierr := p.parseParts(text[idxStart:end], line)
		if ierr != nil {
			return nil, 0, false, ierr
		}
		return &astNode{kind: nArrayVar, name: name, index: idxWord, line: line}, end + 1, true, nil
	}
	return &astNode{kind: nSimpleVar, name: name, line: line}, j, true, nil
}

// findArrayIndexEnd finds the first unescaped ')' at matching nesting,
// starting the scan at text[start]. This resolves spec §9's open question
// on $name(index) parse boundary: "first unescaped ')' at matching
// nesting", tracking bracket/brace nesting introduced by substitutions
// inside the index expression.
func findArrayIndexEnd(text string, start int) (int, error) {
	depthBrack, depthBrace := 0, 0
	i := start
	for i < len(text) {
		switch text[i] {
		case '\\':
			i++
		case '[':
			depthBrack++
		case ']':
			if depthBrack > 0 {
				depthBrack--
			}
		case '{':
			depthBrace++
		case '}':
			if depthBrace > 0 {
				depthBrace--
			}
		case ')':
			if depthBrack == 0 && depthBrace == 0 {
				return i, nil
			}
		}
		i++
	}
	return 0, newErrorPlain("missing close-paren for array index")
}

func newErrorPlain(msg string) error { return newError(ErrSyntax, "%s", msg) }

// parseCmdSubst parses a [...] command substitution starting at text[i] ==
// '['. It recursively invokes the full lexer/parser on the inner text so
// that command substitutions nest arbitrarily (spec §4.2).
func (p *parser) parseCmdSubst(text string, i, line int) (*astNode, int, error) {
	depth := 1
	braceDepth := 0
	j := i + 1
	for j < len(text) {
		switch text[j] {
		case '\\':
			j++
		case '{':
			braceDepth++
		case '}':
			if braceDepth > 0 {
				braceDepth--
			}
		case '[':
			if braceDepth == 0 {
				depth++
			}
		case ']':
			if braceDepth == 0 {
				depth--
				if depth == 0 {
					inner := text[i+1 : j]
					sub := &parser{lx: newLexer(inner), arena: p.arena}
					body, err := sub.parseScript(isTopLevel)
					if err != nil {
						return nil, 0, err
					}
					return &astNode{kind: nCmdSubst, body: body, line: line}, j + 1, nil
				}
			}
		}
		j++
	}
	return nil, 0, &EngineError{Kind: ErrSyntax, Message: "missing close-bracket for command substitution", Line: line}
}
