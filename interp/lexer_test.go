package interp

import "testing"

func lexAll(t *testing.T, src string) []lexWord {
	t.Helper()
	lx := newLexer(src)
	var words []lexWord
	for {
		lx.skipSpace()
		if lx.eof() || lx.atCommandEnd() {
			break
		}
		w, err := lx.nextWord()
		if err != nil {
			t.Fatalf("lexing %q: %v", src, err)
		}
		words = append(words, w)
	}
	return words
}

func TestLexerBareWord(t *testing.T) {
	words := lexAll(t, "set x 1")
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	for i, want := range []string{"set", "x", "1"} {
		if words[i].text != want || words[i].quote != quoteBare {
			t.Errorf("word %d: got %+v, want bare %q", i, words[i], want)
		}
	}
}

func TestLexerBracedWordKeepsContentsRaw(t *testing.T) {
	words := lexAll(t, `{a b $c [d]}`)
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].quote != quoteBrace {
		t.Errorf("got quote %v, want quoteBrace", words[0].quote)
	}
	if words[0].text != `a b $c [d]` {
		t.Errorf("got text %q", words[0].text)
	}
}

func TestLexerNestedBraces(t *testing.T) {
	words := lexAll(t, `{a {b c} d}`)
	if len(words) != 1 || words[0].text != `a {b c} d` {
		t.Fatalf("got %+v", words)
	}
}

func TestLexerMissingCloseBraceIsSyntaxError(t *testing.T) {
	lx := newLexer("{a b")
	_, err := lx.nextWord()
	if err == nil {
		t.Fatal("expected an error for an unterminated brace word")
	}
	le, ok := err.(*lexError)
	if !ok || le.kind != ErrSyntax {
		t.Fatalf("got %v, want a syntax lexError", err)
	}
}

func TestLexerQuotedWord(t *testing.T) {
	words := lexAll(t, `"a b"`)
	if len(words) != 1 || words[0].quote != quoteDouble || words[0].text != "a b" {
		t.Fatalf("got %+v", words)
	}
}

func TestLexerMissingCloseQuoteIsSyntaxError(t *testing.T) {
	lx := newLexer(`"a b`)
	_, err := lx.nextWord()
	if err == nil {
		t.Fatal("expected an error for an unterminated quoted word")
	}
	if le, ok := err.(*lexError); !ok || le.kind != ErrSyntax {
		t.Fatalf("got %v, want a syntax lexError", err)
	}
}

func TestLexerBareWordStopsAtUnbracketedSemicolon(t *testing.T) {
	lx := newLexer("foo;bar")
	w, err := lx.nextWord()
	if err != nil {
		t.Fatal(err)
	}
	if w.text != "foo" {
		t.Fatalf("got %q, want \"foo\"", w.text)
	}
	if !lx.atCommandEnd() {
		t.Fatal("expected lexer to stop right at the semicolon")
	}
}

func TestLexerBareWordBracketsProtectSemicolons(t *testing.T) {
	words := lexAll(t, "[foo;bar] baz")
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2: %+v", len(words), words)
	}
	if words[0].text != "[foo;bar]" {
		t.Errorf("got %q", words[0].text)
	}
}

func TestLexerBackslashNewlineContinuesAcrossLines(t *testing.T) {
	lx := newLexer("set x \\\n  1")
	lx.skipSpace()
	w1, err := lx.nextWord()
	if err != nil {
		t.Fatal(err)
	}
	if w1.text != "set" {
		t.Fatalf("got %q", w1.text)
	}
	lx.skipSpace()
	w2, err := lx.nextWord()
	if err != nil {
		t.Fatal(err)
	}
	if w2.text != "x" {
		t.Fatalf("got %q", w2.text)
	}
	// skipSpace must cross the backslash-newline continuation without
	// treating it as a command separator.
	lx.skipSpace()
	if lx.atCommandEnd() {
		t.Fatal("backslash-newline must not end the command")
	}
	w3, err := lx.nextWord()
	if err != nil {
		t.Fatal(err)
	}
	if w3.text != "1" {
		t.Fatalf("got %q", w3.text)
	}
}

func TestLexerCommentLine(t *testing.T) {
	lx := newLexer("# a comment\nset x 1")
	if !lx.atComment() {
		t.Fatal("expected atComment at '#'")
	}
	lx.skipCommentLine()
	if lx.peek() != '\n' {
		t.Fatalf("expected to stop right before the newline, got %q", lx.peek())
	}
}
