package interp

import (
	"sort"
	"strings"
)

// ParseList parses s as a Tcl list: whitespace-separated elements, with
// brace-quoted and double-quote-quoted elements following the same nesting
// rules as the lexer's word scanning (spec §8: "length(L) =
// length(parse(serialize(L)))").
func ParseList(s string) ([]*Value, error) {
	var out []*Value
	i, n := 0, len(s)
	for {
		for i < n && isListSpace(s[i]) {
			i++
		}
		if i >= n {
			break
		}
		var elem string
		var err error
		switch s[i] {
		case '{':
			elem, i, err = scanBracedListElement(s, i)
		case '"':
			elem, i, err = scanQuotedListElement(s, i)
		default:
			elem, i, err = scanBareListElement(s, i)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, NewString(elem))
	}
	return out, nil
}

func isListSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func scanBracedListElement(s string, i int) (string, int, error) {
	start := i + 1
	depth := 1
	j := start
	for j < len(s) {
		switch s[j] {
		case '\\':
			j++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				elem := s[start:j]
				j++
				if j < len(s) && !isListSpace(s[j]) {
					return "", 0, newError(ErrSyntax, "list element in braces followed by %q instead of space", s[j])
				}
				return elem, j, nil
			}
		}
		j++
	}
	return "", 0, newError(ErrSyntax, "unmatched open brace in list")
}

func scanQuotedListElement(s string, i int) (string, int, error) {
	j := i + 1
	var b strings.Builder
	for j < len(s) {
		switch s[j] {
		case '\\':
			if j+1 < len(s) {
				r, consumed := resolveBackslashAt(s[j:])
				b.WriteRune(r)
				j += consumed
				continue
			}
			b.WriteByte('\\')
			j++
		case '"':
			j++
			return b.String(), j, nil
		default:
			b.WriteByte(s[j])
			j++
		}
	}
	return "", 0, newError(ErrSyntax, "unmatched open quote in list")
}

func scanBareListElement(s string, i int) (string, int, error) {
	start := i
	depth := 0
	j := i
	for j < len(s) {
		switch s[j] {
		case '\\':
			j++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if isListSpace(s[j]) && depth == 0 {
				return unescapeListWord(s[start:j]), j, nil
			}
		}
		j++
	}
	return unescapeListWord(s[start:j]), j, nil
}

func unescapeListWord(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			r, consumed := resolveBackslashAt(s[i:])
			b.WriteRune(r)
			i += consumed
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// JoinList concatenates elements into a list string using sep (spec §8's
// split/join round-trip law).
func JoinList(elems []*Value, sep string) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

// SplitString splits s on any byte in chars into list elements, Tcl-style:
// an empty chars splits into individual characters.
func SplitString(s, chars string) []*Value {
	if chars == "" {
		out := make([]*Value, 0, len(s))
		for _, r := range s {
			out = append(out, NewString(string(r)))
		}
		return out
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(chars, r) })
	// FieldsFunc drops empty fields; Tcl's split keeps them, so redo with a
	// manual split that preserves empties.
	out := make([]*Value, 0, len(parts))
	start := 0
	for i, r := range s {
		if strings.ContainsRune(chars, r) {
			out = append(out, NewString(s[start:i]))
			start = i + len(string(r))
		}
	}
	out = append(out, NewString(s[start:]))
	return out
}

// SortFlags mirrors the host list-sort flag bitmap of spec §6.
type SortFlags struct {
	Decreasing bool
	Integer    bool
	Dictionary bool
	Real       bool
	NoCase     bool
	Unique     bool
}

// SortList sorts a copy of elems per flags.
func SortList(elems []*Value, flags SortFlags) ([]*Value, error) {
	out := make([]*Value, len(elems))
	copy(out, elems)

	less := func(i, j int) bool {
		a, b := out[i].String(), out[j].String()
		if flags.NoCase {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		return a < b
	}
	switch {
	case flags.Integer:
		less = func(i, j int) bool {
			ai, _ := out[i].AsInt()
			bi, _ := out[j].AsInt()
			return ai < bi
		}
	case flags.Real:
		less = func(i, j int) bool {
			af, _ := out[i].AsDouble()
			bf, _ := out[j].AsDouble()
			return af < bf
		}
	case flags.Dictionary:
		less = func(i, j int) bool {
			return strings.ToLower(out[i].String()) < strings.ToLower(out[j].String())
		}
	}
	if flags.Decreasing {
		base := less
		less = func(i, j int) bool { return base(j, i) }
	}
	sort.SliceStable(out, less)

	if flags.Unique {
		out = uniqueAdjacent(out)
	}
	return out, nil
}

func uniqueAdjacent(elems []*Value) []*Value {
	if len(elems) == 0 {
		return elems
	}
	out := elems[:1]
	for _, e := range elems[1:] {
		if e.String() != out[len(out)-1].String() {
			out = append(out, e)
		}
	}
	return out
}
