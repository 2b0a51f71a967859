package interp

import "strings"

// Dict is the engine's mapping-from-key-to-value typed representation. It
// preserves insertion order, matching Tcl's documented dict iteration order.
type Dict struct {
	m     map[string]*Value
	order []string
}

// NewEmptyDict returns an empty, ordered dict.
func NewEmptyDict() *Dict {
	return &Dict{m: map[string]*Value{}}
}

func (d *Dict) clone() *Dict {
	nd := &Dict{m: make(map[string]*Value, len(d.m)), order: append([]string(nil), d.order...)}
	for k, v := range d.m {
		nd.m[k] = v
	}
	return nd
}

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key string) (*Value, bool) {
	v, ok := d.m[key]
	return v, ok
}

// Set inserts or updates key, appending to iteration order on first insert.
func (d *Dict) Set(key string, v *Value) {
	if _, ok := d.m[key]; !ok {
		d.order = append(d.order, key)
	}
	d.m[key] = v
}

// Remove deletes key if present.
func (d *Dict) Remove(key string) {
	if _, ok := d.m[key]; !ok {
		return
	}
	delete(d.m, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Keys returns keys matching glob pattern (or all keys if pattern is "").
func (d *Dict) Keys(pattern string) []string {
	if pattern == "" {
		return append([]string(nil), d.order...)
	}
	out := make([]string, 0, len(d.order))
	for _, k := range d.order {
		if globMatch(pattern, k) {
			out = append(out, k)
		}
	}
	return out
}

// Size returns the number of entries.
func (d *Dict) Size() int { return len(d.order) }

// String renders the dict as a flat key-value list, Tcl's canonical dict
// string form.
func (d *Dict) String() string {
	parts := make([]string, 0, len(d.order)*2)
	for _, k := range d.order {
		parts = append(parts, quoteListElement(k), quoteListElement(d.m[k].String()))
	}
	return strings.Join(parts, " ")
}

// globMatch implements the minimal glob subset needed for dict/array key
// filtering: '*' (any run) and '?' (single char); no host filesystem glob.
func globMatch(pattern, s string) bool {
	return globMatchAt(pattern, s)
}

func globMatchAt(pattern, s string) bool {
	if pattern == "" {
		return s == ""
	}
	switch pattern[0] {
	case '*':
		if globMatchAt(pattern[1:], s) {
			return true
		}
		for i := 0; i < len(s); i++ {
			if globMatchAt(pattern[1:], s[i+1:]) {
				return true
			}
		}
		return false
	case '?':
		if s == "" {
			return false
		}
		return globMatchAt(pattern[1:], s[1:])
	default:
		if s == "" || s[0] != pattern[0] {
			return false
		}
		return globMatchAt(pattern[1:], s[1:])
	}
}
