package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// typedKind tags which typed representation (if any) a Value currently
// carries, per spec §3: "integer, double, boolean, ordered sequence of
// values (list), mapping... (dict), or a custom host-registered type".
type typedKind int

const (
	typedNone typedKind = iota
	typedInt
	typedDouble
	typedBool
	typedList
	typedDict
	typedCustom
)

func (k typedKind) String() string {
	switch k {
	case typedInt:
		return "int"
	case typedDouble:
		return "double"
	case typedBool:
		return "boolean"
	case typedList:
		return "list"
	case typedDict:
		return "dict"
	case typedCustom:
		return "custom"
	default:
		return "string"
	}
}

// ObjType lets a host register a custom typed representation that
// participates in shimmering without the engine knowing its shape (feather
// doc: "Implement ObjType to create types that participate in shimmering").
type ObjType interface {
	Name() string
	UpdateString() string
	Dup() ObjType
}

// Value is the engine's polymorphic value: a dual representation of a
// serialized byte form and an optional typed form, converted lazily and
// memoized (spec §3, "shimmering"). Per the design notes, in a GC'd host
// language the dual cells are plain fields behind a single owner; callers
// treat *Value as a cheap-to-copy, shared, immutable-by-convention handle —
// never mutate a *Value obtained from elsewhere in place without first
// calling Copy.
type Value struct {
	str    string
	strSet bool

	kind typedKind

	i   int64
	f   float64
	b   bool
	lst []*Value
	dct *Dict
	obj ObjType
}

// NewString builds a value whose only representation is the given bytes.
func NewString(s string) *Value {
	return &Value{str: s, strSet: true}
}

// NewInt builds a value typed as an integer.
func NewInt(i int64) *Value {
	return &Value{kind: typedInt, i: i}
}

// NewDouble builds a value typed as a double.
func NewDouble(f float64) *Value {
	return &Value{kind: typedDouble, f: f}
}

// NewBool builds a value typed as a boolean.
func NewBool(b bool) *Value {
	return &Value{kind: typedBool, b: b}
}

// NewList builds a value typed as a list from the given elements. The slice
// is copied defensively so the caller's backing array can be reused.
func NewList(elems []*Value) *Value {
	cp := make([]*Value, len(elems))
	copy(cp, elems)
	return &Value{kind: typedList, lst: cp}
}

// NewDict builds a value typed as a dict wrapping d.
func NewDict(d *Dict) *Value {
	return &Value{kind: typedDict, dct: d}
}

// NewCustom builds a value typed as a host-registered ObjType.
func NewCustom(o ObjType) *Value {
	return &Value{kind: typedCustom, obj: o}
}

// Copy returns a shallow, independent copy: typed payloads that are
// themselves reference types (lists, dicts, custom) are duplicated so that
// mutating the copy's typed form cannot be observed through the original,
// matching Tcl's copy-on-write value semantics.
func (v *Value) Copy() *Value {
	if v == nil {
		return nil
	}
	cp := *v
	switch v.kind {
	case typedList:
		cp.lst = make([]*Value, len(v.lst))
		copy(cp.lst, v.lst)
	case typedDict:
		if v.dct != nil {
			cp.dct = v.dct.clone()
		}
	case typedCustom:
		if v.obj != nil {
			cp.obj = v.obj.Dup()
		}
	}
	return &cp
}

// TypeName returns the value's "stated type" for introspection: the last
// cached typed form, or "string" if none has been computed (spec §3).
func (v *Value) TypeName() string {
	if v.kind == typedCustom && v.obj != nil {
		return v.obj.Name()
	}
	return v.kind.String()
}

// String returns the serialized form, computing and memoizing it from the
// typed form on first access ("shimmer-out").
func (v *Value) String() string {
	if v.strSet {
		return v.str
	}
	s := v.updateString()
	v.str = s
	v.strSet = true
	return s
}

func (v *Value) updateString() string {
	switch v.kind {
	case typedInt:
		return strconv.FormatInt(v.i, 10)
	case typedDouble:
		return formatTclDouble(v.f)
	case typedBool:
		if v.b {
			return "1"
		}
		return "0"
	case typedList:
		parts := make([]string, len(v.lst))
		for i, e := range v.lst {
			parts[i] = quoteListElement(e.String())
		}
		return strings.Join(parts, " ")
	case typedDict:
		return v.dct.String()
	case typedCustom:
		if v.obj != nil {
			return v.obj.UpdateString()
		}
		return ""
	default:
		return ""
	}
}

func formatTclDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', 17, 64)
	// Shorten to the minimal round-trip representation, the way Tcl's
	// double formatting tries to stay human-legible.
	if short := strconv.FormatFloat(f, 'g', -1, 64); parsesBackTo(short, f) {
		s = short
	}
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

func parsesBackTo(s string, f float64) bool {
	got, err := strconv.ParseFloat(s, 64)
	return err == nil && got == f
}

// invalidateString drops the cached serialized form; called whenever a
// typed form is mutated in place (spec §3 invariant: "mutating a typed form
// invalidates the cached serialized form").
func (v *Value) invalidateString() {
	v.strSet = false
	v.str = ""
}

// AsInt reinterprets v as an integer, parsing and memoizing on first use.
func (v *Value) AsInt() (int64, error) {
	if v.kind == typedInt {
		return v.i, nil
	}
	if v.kind == typedCustom {
		if ii, ok := v.obj.(interface{ IntoInt() (int64, bool) }); ok {
			if n, ok2 := ii.IntoInt(); ok2 {
				return n, nil
			}
		}
	}
	s := strings.TrimSpace(v.String())
	n, err := parseTclInt(s)
	if err != nil {
		return 0, newError(ErrType, "expected integer but got %q", v.String())
	}
	v.kind = typedInt
	v.i = n
	return n, nil
}

func parseTclInt(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		n, err = strconv.ParseInt(s[2:], 16, 64)
	case strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O"):
		n, err = strconv.ParseInt(s[2:], 8, 64)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		n, err = strconv.ParseInt(s[2:], 2, 64)
	default:
		n, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return n, nil
}

// AsDouble reinterprets v as a double.
func (v *Value) AsDouble() (float64, error) {
	if v.kind == typedDouble {
		return v.f, nil
	}
	if v.kind == typedInt {
		return float64(v.i), nil
	}
	if v.kind == typedCustom {
		if id, ok := v.obj.(interface{ IntoDouble() (float64, bool) }); ok {
			if f, ok2 := id.IntoDouble(); ok2 {
				return f, nil
			}
		}
	}
	s := strings.TrimSpace(v.String())
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newError(ErrType, "expected floating-point number but got %q", v.String())
	}
	v.kind = typedDouble
	v.f = f
	return f, nil
}

// AsBool reinterprets v as a boolean, accepting the Tcl boolean literal set.
func (v *Value) AsBool() (bool, error) {
	if v.kind == typedBool {
		return v.b, nil
	}
	if v.kind == typedInt {
		return v.i != 0, nil
	}
	if v.kind == typedCustom {
		if ib, ok := v.obj.(interface{ IntoBool() (bool, bool) }); ok {
			if b, ok2 := ib.IntoBool(); ok2 {
				return b, nil
			}
		}
	}
	s := strings.ToLower(strings.TrimSpace(v.String()))
	switch s {
	case "1", "true", "yes", "on":
		v.kind, v.b = typedBool, true
		return true, nil
	case "0", "false", "no", "off":
		v.kind, v.b = typedBool, false
		return false, nil
	}
	return false, newError(ErrType, "expected boolean value but got %q", v.String())
}

// AsList reinterprets v as a list, parsing Tcl list syntax on first use.
func (v *Value) AsList() ([]*Value, error) {
	if v.kind == typedList {
		return v.lst, nil
	}
	if v.kind == typedCustom {
		if il, ok := v.obj.(interface{ IntoList() ([]*Value, bool) }); ok {
			if l, ok2 := il.IntoList(); ok2 {
				return l, nil
			}
		}
	}
	elems, err := ParseList(v.String())
	if err != nil {
		return nil, err
	}
	v.kind = typedList
	v.lst = elems
	return elems, nil
}

// AsDict reinterprets v as a dict.
func (v *Value) AsDict() (*Dict, error) {
	if v.kind == typedDict {
		return v.dct, nil
	}
	if v.kind == typedCustom {
		if id, ok := v.obj.(interface{ IntoDict() (map[string]*Value, []string, bool) }); ok {
			if m, order, ok2 := id.IntoDict(); ok2 {
				return &Dict{m: m, order: order}, nil
			}
		}
	}
	elems, err := ParseList(v.String())
	if err != nil {
		return nil, err
	}
	if len(elems)%2 != 0 {
		return nil, newError(ErrType, "missing value to go with key")
	}
	d := NewEmptyDict()
	for i := 0; i+1 < len(elems); i += 2 {
		d.Set(elems[i].String(), elems[i+1])
	}
	return d, nil
}

// InternalRep exposes the custom ObjType, if any, for host code written
// against feather's documented "Custom Object Types" convention.
func (v *Value) InternalRep() interface{} {
	if v.kind == typedCustom {
		return v.obj
	}
	return nil
}

// quoteListElement quotes s the way Tcl's list-formatting rules require so
// that split(join(L)) round-trips (spec §8 round-trip laws).
func quoteListElement(s string) string {
	if s == "" {
		return "{}"
	}
	if !needsQuoting(s) {
		return s
	}
	if canBrace(s) {
		return "{" + s + "}"
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$', '[':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r', '{', '}', '"', '\\', '$', '[', ']', ';':
			return true
		}
	}
	return false
}

// canBrace reports whether s can be brace-quoted safely: balanced braces,
// no trailing unescaped backslash.
func canBrace(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		case '\\':
			i++
		}
	}
	return depth == 0 && !strings.HasSuffix(s, "\\")
}
