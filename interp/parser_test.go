package interp

import "testing"

func TestParseSimpleCommand(t *testing.T) {
	script, err := Parse("set x 1")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	if script.root.kind != nScript {
		t.Fatalf("got root kind %v, want nScript", script.root.kind)
	}
	if len(script.root.commands) != 1 {
		t.Fatalf("got %d commands, want 1", len(script.root.commands))
	}
	cmd := script.root.commands[0]
	if len(cmd.words) != 3 {
		t.Fatalf("got %d words, want 3", len(cmd.words))
	}
	if cmd.words[0].kind != nLiteral || cmd.words[0].text != "set" {
		t.Errorf("word 0: got %+v", cmd.words[0])
	}
}

func TestParseMultipleCommandsSeparatedBySemicolonAndNewline(t *testing.T) {
	script, err := Parse("set x 1; set y 2\nset z 3")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	if len(script.root.commands) != 3 {
		t.Fatalf("got %d commands, want 3", len(script.root.commands))
	}
}

func TestParseCommentIsSkipped(t *testing.T) {
	script, err := Parse("# a comment\nset x 1")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	if len(script.root.commands) != 1 {
		t.Fatalf("got %d commands, want 1 (comment should produce none)", len(script.root.commands))
	}
}

func TestParseSimpleVarSubstitution(t *testing.T) {
	script, err := Parse("set y $x")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	word := script.root.commands[0].words[2]
	if word.kind != nSimpleVar || word.name != "x" {
		t.Fatalf("got %+v, want simple-var \"x\"", word)
	}
}

func TestParseBracedVarRefWithDollar(t *testing.T) {
	script, err := Parse("set y ${my var}")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	word := script.root.commands[0].words[2]
	if word.kind != nSimpleVar || word.name != "my var" {
		t.Fatalf("got %+v, want simple-var \"my var\"", word)
	}
}

func TestParseArrayVarReference(t *testing.T) {
	script, err := Parse("set y $a(0)")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	word := script.root.commands[0].words[2]
	if word.kind != nArrayVar || word.name != "a" {
		t.Fatalf("got %+v, want array-var \"a\"", word)
	}
	if word.index == nil || word.index.kind != nLiteral || word.index.text != "0" {
		t.Fatalf("got index %+v, want literal \"0\"", word.index)
	}
}

func TestParseArrayIndexStopsAtMatchingParen(t *testing.T) {
	script, err := Parse("set y $a([expr {1+1}])")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	word := script.root.commands[0].words[2]
	if word.kind != nArrayVar {
		t.Fatalf("got %+v, want array-var", word)
	}
	if word.index == nil || word.index.kind != nCmdSubst {
		t.Fatalf("got index %+v, want a command-substitution index", word.index)
	}
}

func TestParseCommandSubstitutionNests(t *testing.T) {
	script, err := Parse("set y [list [foo]]")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	word := script.root.commands[0].words[2]
	if word.kind != nCmdSubst {
		t.Fatalf("got %+v, want nCmdSubst", word)
	}
	if len(word.body.commands) != 1 {
		t.Fatalf("got %d inner commands, want 1", len(word.body.commands))
	}
	inner := word.body.commands[0]
	if len(inner.words) != 2 || inner.words[0].text != "list" {
		t.Fatalf("got inner words %+v", inner.words)
	}
	if inner.words[1].kind != nCmdSubst {
		t.Fatalf("got %+v, want the nested [foo] to parse as a cmd-subst", inner.words[1])
	}
}

func TestParseBraceExpandPrefix(t *testing.T) {
	script, err := Parse("foo {*}$args")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	word := script.root.commands[0].words[1]
	if word.kind != nExpand {
		t.Fatalf("got %+v, want nExpand", word)
	}
	if word.inner == nil || word.inner.kind != nSimpleVar || word.inner.name != "args" {
		t.Fatalf("got inner %+v, want simple-var \"args\"", word.inner)
	}
}

func TestParseMixedWordBecomesWordNodeWithParts(t *testing.T) {
	script, err := Parse(`set y "a$x b"`)
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	word := script.root.commands[0].words[2]
	if word.kind != nWord {
		t.Fatalf("got %+v, want nWord (multi-part)", word)
	}
	if len(word.parts) != 3 {
		t.Fatalf("got %d parts, want 3 (\"a\", $x, \" b\")", len(word.parts))
	}
	if word.parts[0].kind != nLiteral || word.parts[0].text != "a" {
		t.Errorf("part 0: got %+v", word.parts[0])
	}
	if word.parts[1].kind != nSimpleVar || word.parts[1].name != "x" {
		t.Errorf("part 1: got %+v", word.parts[1])
	}
	if word.parts[2].kind != nLiteral || word.parts[2].text != " b" {
		t.Errorf("part 2: got %+v", word.parts[2])
	}
}

func TestParseMissingCloseBracketIsSyntaxError(t *testing.T) {
	_, err := Parse("set y [foo")
	if err == nil {
		t.Fatal("expected a syntax error for an unterminated command substitution")
	}
	ee, ok := err.(*EngineError)
	if !ok || ee.Kind != ErrSyntax {
		t.Fatalf("got %v, want an ErrSyntax EngineError", err)
	}
}

func TestParseEmptyScriptHasNoCommands(t *testing.T) {
	script, err := Parse("   \n\n  ")
	if err != nil {
		t.Fatal(err)
	}
	defer script.arena.Pop()

	if len(script.root.commands) != 0 {
		t.Fatalf("got %d commands, want 0", len(script.root.commands))
	}
}
