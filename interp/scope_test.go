package interp

import "testing"

func TestFrameScalarGetSet(t *testing.T) {
	f := NewGlobalFrame()
	if err := f.SetScalar("x", NewInt(1)); err != nil {
		t.Fatal(err)
	}
	v, err := f.GetScalar("x")
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := v.AsInt(); n != 1 {
		t.Errorf("got %d, want 1", n)
	}
	if _, err := f.GetScalar("missing"); err == nil {
		t.Error("expected name-not-found error")
	}
}

func TestFrameUpvarLink(t *testing.T) {
	global := NewGlobalFrame()
	global.SetScalar("counter", NewInt(0))

	child := global.NewChildFrame(flagProc)
	if err := child.Link("c", global, "counter"); err != nil {
		t.Fatal(err)
	}
	if err := child.SetScalar("c", NewInt(5)); err != nil {
		t.Fatal(err)
	}
	v, err := global.GetScalar("counter")
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := v.AsInt(); n != 5 {
		t.Errorf("global counter = %d, want 5 (upvar write should reach it)", n)
	}
}

func TestFrameLinkRejectsSelf(t *testing.T) {
	f := NewGlobalFrame()
	if err := f.Link("x", f, "x"); err == nil {
		t.Error("expected name-collision error linking a variable to itself")
	}
}

func TestFrameAtAbsoluteLevel(t *testing.T) {
	global := NewGlobalFrame()
	mid := global.NewChildFrame(flagProc)
	leaf := mid.NewChildFrame(flagProc)

	got, err := FrameAtAbsoluteLevel(leaf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != global {
		t.Error("level #0 should resolve to the global frame")
	}
}

func TestFrameAtRelativeLevel(t *testing.T) {
	global := NewGlobalFrame()
	mid := global.NewChildFrame(flagProc)
	leaf := mid.NewChildFrame(flagProc)

	got, err := FrameAtRelativeLevel(leaf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != mid {
		t.Error("level 1 should resolve to the immediate caller's frame")
	}
}

func TestFrameArrayElements(t *testing.T) {
	f := NewGlobalFrame()
	if err := f.SetArrayElem("a", "k1", NewString("v1")); err != nil {
		t.Fatal(err)
	}
	if err := f.SetArrayElem("a", "k2", NewString("v2")); err != nil {
		t.Fatal(err)
	}
	names, err := f.ArrayNames("a", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "k1" || names[1] != "k2" {
		t.Errorf("got %v, want [k1 k2] in insertion order", names)
	}
}
