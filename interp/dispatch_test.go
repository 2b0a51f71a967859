package interp

import "testing"

func TestDispatchRecursionLimit(t *testing.T) {
	it := New(Options{RecursionLimit: 8})
	if _, err := it.Eval(`proc loop {} { loop }`); err != nil {
		t.Fatal(err)
	}
	_, err := it.Eval(`loop`)
	if err == nil {
		t.Fatal("expected a recursion-limit error")
	}
}

func TestRenameAndUnset(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`proc greet {} { return hi }`); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Eval(`rename greet hello`); err != nil {
		t.Fatal(err)
	}
	v, err := it.Eval(`hello`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "hi" {
		t.Errorf("got %q, want hi", v.String())
	}
	if _, err := it.Eval(`greet`); err == nil {
		t.Error("expected name-not-found after rename")
	}

	if _, err := it.Eval(`set x 1; unset x`); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Eval(`set x`); err == nil {
		t.Error("expected name-not-found after unset")
	}
}

func TestGlobalLinksIntoProcFrame(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`set counter 0`); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Eval(`proc bump {} { global counter; incr counter }`); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Eval(`bump; bump; bump`); err != nil {
		t.Fatal(err)
	}
	v, err := it.Eval(`set counter`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "3" {
		t.Errorf("got %q, want 3", v.String())
	}
}

func TestTryOnErrorHandler(t *testing.T) {
	it := New(Options{})
	v, err := it.Eval(`try { error boom } on error {msg} { return "caught: $msg" }`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "caught: boom" {
		t.Errorf("got %q, want %q", v.String(), "caught: boom")
	}
}
