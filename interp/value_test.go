package interp

import "testing"

func TestValueShimmer(t *testing.T) {
	v := NewString("42")
	n, err := v.AsInt()
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Errorf("got %d, want 42", n)
	}
	// The cached string form must survive re-typing to the same value.
	if v.String() != "42" {
		t.Errorf("got %q, want %q", v.String(), "42")
	}
}

func TestValueDoubleFormatting(t *testing.T) {
	v := NewDouble(3.5)
	if v.String() != "3.5" {
		t.Errorf("got %q, want 3.5", v.String())
	}
	v = NewDouble(2.0)
	if v.String() != "2.0" {
		t.Errorf("got %q, want 2.0", v.String())
	}
}

func TestValueCopyIsolatesTypedForm(t *testing.T) {
	orig := NewList([]*Value{NewString("a"), NewString("b")})
	cp := orig.Copy()
	cp.lst[0] = NewString("z")
	if orig.lst[0].String() != "a" {
		t.Error("mutating the copy's list affected the original")
	}
}

func TestValueBoolLiterals(t *testing.T) {
	for _, s := range []string{"1", "true", "yes", "on"} {
		b, err := NewString(s).AsBool()
		if err != nil || !b {
			t.Errorf("AsBool(%q) = %v, %v; want true, nil", s, b, err)
		}
	}
	for _, s := range []string{"0", "false", "no", "off"} {
		b, err := NewString(s).AsBool()
		if err != nil || b {
			t.Errorf("AsBool(%q) = %v, %v; want false, nil", s, b, err)
		}
	}
}

func TestDictRoundTrip(t *testing.T) {
	d := NewEmptyDict()
	d.Set("a", NewString("1"))
	d.Set("b", NewString("2"))
	v := NewDict(d)

	str := v.String()
	fromStr, err := NewString(str).AsDict()
	if err != nil {
		t.Fatal(err)
	}
	got, ok := fromStr.Get("a")
	if !ok || got.String() != "1" {
		t.Errorf("got %v, %v; want 1, true", got, ok)
	}
}
