package interp

import (
	"strings"
)

// evalExpr evaluates src as a conditional/arithmetic expression against
// frame (SPEC_FULL.md §C "expr and the conditional mini-grammar"). Unlike
// a plain word, an expression string performs its own $var and [cmd]
// substitution lazily as operands are reached, which is what lets
// `while {$i < 10} {...}` re-read $i on every iteration instead of once
// when the loop started — the same reason Tcl's own `if`/`while`
// condition words are conventionally brace-quoted.
func (it *Interp) evalExpr(frame *Frame, src string) (*Value, error) {
	p := &exprParser{it: it, frame: frame, s: src, n: len(src)}
	p.skipSpace()
	v, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != p.n {
		return nil, newError(ErrSyntax, "syntax error in expression %q", src)
	}
	return v, nil
}

type exprParser struct {
	it    *Interp
	frame *Frame
	s     string
	pos   int
	n     int
}

func (p *exprParser) skipSpace() {
	for p.pos < p.n && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t' || p.s[p.pos] == '\n' || p.s[p.pos] == '\r') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.pos >= p.n {
		return 0
	}
	return p.s[p.pos]
}

func (p *exprParser) hasPrefix(op string) bool {
	return strings.HasPrefix(p.s[p.pos:], op)
}

// parseOr / parseAnd / parseCompare / parseAdd / parseMul / parseUnary /
// parsePrimary implement standard precedence climbing: || then && then
// comparisons then + - then * / % then unary then atoms.
func (p *exprParser) parseOr() (*Value, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.hasPrefix("||") {
			return left, nil
		}
		p.pos += 2
		p.skipSpace()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lb, _ := left.AsBool()
		rb, _ := right.AsBool()
		left = NewBool(lb || rb)
	}
}

func (p *exprParser) parseAnd() (*Value, error) {
	left, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.hasPrefix("&&") {
			return left, nil
		}
		p.pos += 2
		p.skipSpace()
		right, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		lb, _ := left.AsBool()
		rb, _ := right.AsBool()
		left = NewBool(lb && rb)
	}
}

var compareOps = []string{"==", "!=", "<=", ">=", "<", ">", "eq", "ne"}

func (p *exprParser) parseCompare() (*Value, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		op := p.matchOp(compareOps)
		if op == "" {
			return left, nil
		}
		p.skipSpace()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left, err = compareValues(op, left, right)
		if err != nil {
			return nil, err
		}
	}
}

func (p *exprParser) matchOp(ops []string) string {
	for _, op := range ops {
		if p.hasPrefix(op) {
			// "eq"/"ne" must be a whole word, not a prefix of an identifier.
			if (op == "eq" || op == "ne") && p.pos+len(op) < p.n && isNameByte(p.s[p.pos+len(op)]) {
				continue
			}
			p.pos += len(op)
			return op
		}
	}
	return ""
}

func compareValues(op string, a, b *Value) (*Value, error) {
	if op == "eq" {
		return NewBool(a.String() == b.String()), nil
	}
	if op == "ne" {
		return NewBool(a.String() != b.String()), nil
	}
	af, aerr := a.AsDouble()
	bf, berr := b.AsDouble()
	if aerr == nil && berr == nil {
		switch op {
		case "==":
			return NewBool(af == bf), nil
		case "!=":
			return NewBool(af != bf), nil
		case "<":
			return NewBool(af < bf), nil
		case ">":
			return NewBool(af > bf), nil
		case "<=":
			return NewBool(af <= bf), nil
		case ">=":
			return NewBool(af >= bf), nil
		}
	}
	as, bs := a.String(), b.String()
	switch op {
	case "==":
		return NewBool(as == bs), nil
	case "!=":
		return NewBool(as != bs), nil
	case "<":
		return NewBool(as < bs), nil
	case ">":
		return NewBool(as > bs), nil
	case "<=":
		return NewBool(as <= bs), nil
	case ">=":
		return NewBool(as >= bs), nil
	}
	return nil, newError(ErrSyntax, "unknown comparison operator %q", op)
}

func (p *exprParser) parseAdd() (*Value, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		c := p.peek()
		if c != '+' && c != '-' {
			return left, nil
		}
		p.pos++
		p.skipSpace()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		lf, err := left.AsDouble()
		if err != nil {
			return nil, err
		}
		rf, err := right.AsDouble()
		if err != nil {
			return nil, err
		}
		var res float64
		if c == '+' {
			res = lf + rf
		} else {
			res = lf - rf
		}
		left = numericResult(left, right, res)
	}
}

func (p *exprParser) parseMul() (*Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		c := p.peek()
		if c != '*' && c != '/' && c != '%' {
			return left, nil
		}
		p.pos++
		p.skipSpace()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if c == '%' {
			li, err := left.AsInt()
			if err != nil {
				return nil, err
			}
			ri, err := right.AsInt()
			if err != nil {
				return nil, err
			}
			if ri == 0 {
				return nil, newError(ErrUser, "divide by zero")
			}
			left = NewInt(li % ri)
			continue
		}
		lf, err := left.AsDouble()
		if err != nil {
			return nil, err
		}
		rf, err := right.AsDouble()
		if err != nil {
			return nil, err
		}
		var res float64
		if c == '*' {
			res = lf * rf
		} else {
			if rf == 0 {
				return nil, newError(ErrUser, "divide by zero")
			}
			res = lf / rf
		}
		left = numericResult(left, right, res)
	}
}

// numericResult keeps integer arithmetic exact when both operands are
// integral, falling back to double otherwise, matching Tcl's "narrowest
// adequate numeric type" behavior for expr.
func numericResult(a, b *Value, f float64) *Value {
	_, aerr := a.AsInt()
	_, berr := b.AsInt()
	if aerr == nil && berr == nil && f == float64(int64(f)) {
		return NewInt(int64(f))
	}
	return NewDouble(f)
}

func (p *exprParser) parseUnary() (*Value, error) {
	p.skipSpace()
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		f, err := v.AsDouble()
		if err != nil {
			return nil, err
		}
		return numericResult(v, v, -f), nil
	case '!':
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		b, err := v.AsBool()
		if err != nil {
			return nil, err
		}
		return NewBool(!b), nil
	case '+':
		p.pos++
		return p.parseUnary()
	default:
		return p.parsePrimary()
	}
}

func (p *exprParser) parsePrimary() (*Value, error) {
	p.skipSpace()
	if p.pos >= p.n {
		return nil, newError(ErrSyntax, "unexpected end of expression")
	}
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		v, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, newError(ErrSyntax, "missing close-paren in expression")
		}
		p.pos++
		return v, nil

	case c == '$':
		node, next, ok, err := (&parser{}).parseVarRef(p.s, p.pos, 0)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newError(ErrSyntax, "expected variable name after $")
		}
		p.pos = next
		v, code, err := p.it.evalWordNode(p.frame, node)
		if err != nil {
			return nil, err
		}
		if code != CodeOK {
			return nil, newError(ErrUser, "yield is not permitted inside an expression")
		}
		return v, nil

	case c == '[':
		pp := &parser{}
		node, next, err := pp.parseCmdSubst(p.s, p.pos, 0)
		if err != nil {
			return nil, err
		}
		p.pos = next
		v, code, err := p.it.evalWordNode(p.frame, node)
		if err != nil {
			return nil, err
		}
		if code != CodeOK {
			return nil, newError(ErrUser, "yield is not permitted inside an expression")
		}
		return v, nil

	case c == '"':
		p.pos++
		start := p.pos
		for p.pos < p.n && p.s[p.pos] != '"' {
			if p.s[p.pos] == '\\' {
				p.pos++
			}
			p.pos++
		}
		if p.pos >= p.n {
			return nil, newError(ErrSyntax, "missing close-quote in expression")
		}
		text := p.s[start:p.pos]
		p.pos++
		return NewString(unescapeListWord(text)), nil

	case c == '{':
		p.pos++
		start := p.pos
		depth := 1
		for p.pos < p.n && depth > 0 {
			switch p.s[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth > 0 {
				p.pos++
			}
		}
		text := p.s[start:p.pos]
		if p.pos < p.n {
			p.pos++
		}
		return NewString(text), nil

	case isDigit(c):
		start := p.pos
		for p.pos < p.n && (isDigit(p.s[p.pos]) || p.s[p.pos] == '.' ||
			p.s[p.pos] == 'x' || p.s[p.pos] == 'X' || p.s[p.pos] == 'e' || p.s[p.pos] == 'E' ||
			isHexDigit(p.s[p.pos])) {
			p.pos++
		}
		return NewString(p.s[start:p.pos]), nil

	case isNameByte(c):
		start := p.pos
		for p.pos < p.n && isNameByte(p.s[p.pos]) {
			p.pos++
		}
		word := p.s[start:p.pos]
		switch word {
		case "true", "yes", "on":
			return NewBool(true), nil
		case "false", "no", "off":
			return NewBool(false), nil
		default:
			return NewString(word), nil
		}

	default:
		return nil, newError(ErrSyntax, "unexpected character %q in expression", string(c))
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
