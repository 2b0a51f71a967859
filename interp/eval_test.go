package interp

import "testing"

// TestEndToEndScenarios exercises four of spec.md §8's six worked
// scenarios; proc defaults/rest args and coroutine yield/resume have their
// own tests below.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "basic dispatch",
			src:  `set x 41; incr x; set x`,
			want: "42",
		},
		{
			name: "catch traps an error",
			src:  `catch {error oops} msg opts; list $msg [dict get $opts -code]`,
			want: "oops 1",
		},
		{
			name: "upvar across two call frames",
			src:  `proc outer {} {set v 0; middle; return $v}; proc middle {} {upvar 1 v u; set u 7}; outer`,
			want: "7",
		},
		{
			name: "break out of a nested foreach",
			src: `set acc {}
foreach i {1 2 3} { foreach j {10 20} { if {$j == 20} break; lappend acc "$i.$j" } }
set acc`,
			want: "1.10 2.10 3.10",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it := New(Options{})
			v, err := it.Eval(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if v.String() != c.want {
				t.Errorf("got %q, want %q", v.String(), c.want)
			}
		})
	}
}

func TestProcDefaultsAndRestArgs(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`proc f {a {b 10} args} {list $a $b $args}`); err != nil {
		t.Fatal(err)
	}
	cases := []struct{ src, want string }{
		{"f 1", "1 10 {}"},
		{"f 1 2", "1 2 {}"},
		{"f 1 2 3 4", "1 2 {3 4}"},
	}
	for _, c := range cases {
		v, err := it.Eval(c.src)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != c.want {
			t.Errorf("%s: got %q, want %q", c.src, v.String(), c.want)
		}
	}
}

func TestCoroutineYieldResume(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`proc gen {} { yield; foreach x {a b c} { yield $x } }`); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Eval(`coroutine g gen`); err != nil {
		t.Fatal(err)
	}
	v, err := it.Eval(`list [g] [g] [g] [g]`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "{} a b c" {
		t.Errorf("got %q, want %q", v.String(), "{} a b c")
	}
}

func TestEmptyAndCommentOnlyScript(t *testing.T) {
	it := New(Options{})
	v, err := it.Eval("")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "" {
		t.Errorf("empty script: got %q, want empty", v.String())
	}

	v, err = it.Eval("# just a comment\n# another")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "" {
		t.Errorf("comment-only script: got %q, want empty", v.String())
	}
}

func TestArrayEmptyIndex(t *testing.T) {
	it := New(Options{})
	if err := it.GlobalFrame().SetArrayElem("a", "", NewString("hello")); err != nil {
		t.Fatal(err)
	}
	v, err := it.Eval(`set x $a(); set x`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "hello" {
		t.Errorf("got %q, want %q", v.String(), "hello")
	}
}

func TestYieldOutsideCoroutineIsError(t *testing.T) {
	it := New(Options{})
	_, err := it.Eval(`yield`)
	if err == nil {
		t.Fatal("expected an error calling yield outside a coroutine")
	}
}

func TestCoroutineInvokedAfterDone(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`proc gen {} { return done }`); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Eval(`coroutine g gen`); err != nil {
		t.Fatal(err)
	}
	_, err := it.Eval(`g`)
	if err == nil {
		t.Fatal("expected invalid-command-name error resuming a finished coroutine")
	}
}

func TestUnterminatedBraceIsSyntaxError(t *testing.T) {
	it := New(Options{})
	_, err := it.Eval(`set x {unterminated`)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	ee, ok := err.(*EngineError)
	if !ok || ee.Kind != ErrSyntax {
		t.Errorf("got %v, want a syntax-error EngineError", err)
	}
}
