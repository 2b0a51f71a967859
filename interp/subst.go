package interp

import "strings"

// SubstFlags selects which substitution kinds `subst` performs (spec
// §4.4): each can be independently disabled, leaving that kind's syntax
// untouched in the output.
type SubstFlags struct {
	Commands  bool
	Variables bool
	Backslash bool
}

// DefaultSubstFlags enables every kind, `subst`'s default behavior.
func DefaultSubstFlags() SubstFlags { return SubstFlags{true, true, true} }

// Subst performs whole-string substitution per flags, returning a single
// value (spec §4.4 "subst"). Unlike normal word evaluation, subst walks
// the entire string rather than a single pre-parsed word, and each
// disabled kind's special characters pass through literally.
func (it *Interp) Subst(frame *Frame, src string, flags SubstFlags) (*Value, error) {
	var b strings.Builder
	i, n := 0, len(src)
	for i < n {
		c := src[i]
		switch {
		case c == '\\' && flags.Backslash && i+1 < n:
			r, consumed := resolveBackslashAt(src[i:])
			b.WriteRune(r)
			i += consumed
		case c == '$' && flags.Variables:
			node, next, ok, err := (&parser{}).parseVarRef(src, i, 0)
			if err != nil {
				return nil, err
			}
			if !ok {
				b.WriteByte('$')
				i++
				continue
			}
			v, code, err := it.evalWordNode(frame, node)
			if err != nil {
				return nil, err
			}
			if code != CodeOK {
				return nil, newError(ErrUser, "yield is not permitted inside subst")
			}
			b.WriteString(v.String())
			i = next
		case c == '[' && flags.Commands:
			node, next, err := (&parser{}).parseCmdSubst(src, i, 0)
			if err != nil {
				return nil, err
			}
			v, code, err := it.evalWordNode(frame, node)
			if err != nil {
				return nil, err
			}
			if code != CodeOK {
				return nil, newError(ErrUser, "yield is not permitted inside subst")
			}
			b.WriteString(v.String())
			i = next
		default:
			b.WriteByte(c)
			i++
		}
	}
	return NewString(b.String()), nil
}
