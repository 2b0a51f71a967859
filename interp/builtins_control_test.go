package interp

import "testing"

func TestLsortDefaultAsciiOrder(t *testing.T) {
	it := New(Options{})
	v, err := it.Eval(`lsort {banana Apple cherry}`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "Apple banana cherry"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLsortIntegerFlag(t *testing.T) {
	it := New(Options{})
	v, err := it.Eval(`lsort -integer {10 2 33 4}`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "2 4 10 33"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLsortDecreasingFlag(t *testing.T) {
	it := New(Options{})
	v, err := it.Eval(`lsort -integer -decreasing {10 2 33 4}`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "33 10 4 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLsortNocaseFlag(t *testing.T) {
	it := New(Options{})
	v, err := it.Eval(`lsort -nocase {banana Apple cherry}`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "Apple banana cherry"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLsortUniqueFlag(t *testing.T) {
	it := New(Options{})
	v, err := it.Eval(`lsort -integer -unique {1 3 3 2 1}`)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "1 2 3"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLsortRejectsUnknownOption(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`lsort -bogus {1 2}`); err == nil {
		t.Fatal("expected an error for an unrecognized lsort option")
	}
}

func TestProcBodyCacheHitsAcrossCalls(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`proc greet {} { return hi }`); err != nil {
		t.Fatal(err)
	}
	proc := it.procs["greet"]
	s1, err := it.procScript(proc)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := it.procScript(proc)
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Fatal("expected repeated procScript calls for the same proc to return the identical cached *Script")
	}
	for i := 0; i < 3; i++ {
		v, err := it.Eval(`greet`)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != "hi" {
			t.Fatalf("call %d: got %q, want hi", i, v.String())
		}
	}
}

func TestProcRedefinitionInvalidatesStaleCacheEntry(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`proc greet {} { return hi }`); err != nil {
		t.Fatal(err)
	}
	oldProc := it.procs["greet"]
	oldScript, err := it.procScript(oldProc)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := it.Eval(`proc greet {} { return bye }`); err != nil {
		t.Fatal(err)
	}
	newProc := it.procs["greet"]
	if newProc.cacheKey == oldProc.cacheKey {
		t.Fatal("expected redefinition to mint a distinct cache key")
	}
	newScript, err := it.procScript(newProc)
	if err != nil {
		t.Fatal(err)
	}
	if newScript == oldScript {
		t.Fatal("expected the redefined body to parse to a distinct *Script")
	}

	v, err := it.Eval(`greet`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "bye" {
		t.Fatalf("got %q, want bye", v.String())
	}
}
