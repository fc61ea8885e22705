package syntax

import "testing"

func TestLexHappyPath(t *testing.T) {
	text := "program X; begin writeln('hi') end."
	want := []Kind{
		ProgramKw, Ident, Semicolon, BeginKw, WritelnKw, LParen,
		StringLiteral, RParen, EndKw, Dot, Eof,
	}
	var got []Kind
	pos := 0
	for {
		lx := Lex(text, pos)
		if lx.Kind.IsTrivia() {
			pos += lx.Length
			continue
		}
		got = append(got, lx.Kind)
		if lx.Kind == Eof {
			break
		}
		pos += lx.Length
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexDoubledQuoteString(t *testing.T) {
	lx := Lex("'it''s'", 0)
	if lx.Kind != StringLiteral {
		t.Fatalf("Kind = %v, want StringLiteral", lx.Kind)
	}
	if !lx.Status.Ok {
		t.Fatalf("Status.Ok = false, want true")
	}
	if lx.Length != len("'it''s'") {
		t.Fatalf("Length = %d, want %d", lx.Length, len("'it''s'"))
	}
}

func TestLexUnterminatedComment(t *testing.T) {
	lx := Lex("{ hello", 0)
	if lx.Kind != BraceComment {
		t.Fatalf("Kind = %v, want BraceComment", lx.Kind)
	}
	if lx.Status.Err != UnterminatedComment {
		t.Fatalf("Status.Err = %v, want UnterminatedComment", lx.Status.Err)
	}
}

func TestLexUnterminatedCComment(t *testing.T) {
	lx := Lex("/* hello", 0)
	if lx.Kind != CComment || lx.Status.Err != UnterminatedComment {
		t.Fatalf("got (%v, %v), want (CComment, UnterminatedComment)", lx.Kind, lx.Status.Err)
	}
}

func TestLexNumberTooLarge(t *testing.T) {
	lx := Lex("32768", 0)
	if lx.Kind != IntLiteral {
		t.Fatalf("Kind = %v, want IntLiteral", lx.Kind)
	}
	if lx.Status.Err != NumberTooLarge {
		t.Fatalf("Status.Err = %v, want NumberTooLarge", lx.Status.Err)
	}
}

func TestLexNumberAtLimit(t *testing.T) {
	lx := Lex("32767", 0)
	if lx.Status.Err != NoError {
		t.Fatalf("Status.Err = %v, want NoError", lx.Status.Err)
	}
}

func TestLexStrayCharacter(t *testing.T) {
	lx := Lex("@", 0)
	if lx.Kind != Bad {
		t.Fatalf("Kind = %v, want Bad", lx.Kind)
	}
	if lx.Status.Err != StrayChar {
		t.Fatalf("Status.Err = %v, want StrayChar", lx.Status.Err)
	}
}

func TestLexKeywordVersusIdent(t *testing.T) {
	if lx := Lex("integer", 0); lx.Kind != IntegerKw {
		t.Errorf("Lex(\"integer\") = %v, want IntegerKw", lx.Kind)
	}
	if lx := Lex("integerValue", 0); lx.Kind != Ident {
		t.Errorf("Lex(\"integerValue\") = %v, want Ident", lx.Kind)
	}
}

func TestLexSymbolsLongestMatchFirst(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
		len  int
	}{
		{"<>", NotEqual, 2},
		{"<=", LessEqual, 2},
		{">=", GreaterEqual, 2},
		{":=", Assign, 2},
		{"<", Less, 1},
		{">", Greater, 1},
		{":", Colon, 1},
	}
	for _, tt := range tests {
		lx := Lex(tt.text, 0)
		if lx.Kind != tt.kind || lx.Length != tt.len {
			t.Errorf("Lex(%q) = (%v, %d), want (%v, %d)", tt.text, lx.Kind, lx.Length, tt.kind, tt.len)
		}
	}
}

func TestLexDeterministic(t *testing.T) {
	text := "program Foo; var x: integer; begin x := 1 end."
	a := lexAll(text)
	b := lexAll(text)
	if len(a) != len(b) {
		t.Fatalf("lexAll returned different lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("lexeme %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLexPartitionsWithoutGaps(t *testing.T) {
	text := "program Foo; var x: integer; begin x := 32768 end."
	pos := 0
	for pos < len(text) {
		lx := Lex(text, pos)
		if lx.Length <= 0 {
			t.Fatalf("zero-length lexeme at offset %d (kind %v)", pos, lx.Kind)
		}
		pos += lx.Length
	}
	if pos != len(text) {
		t.Fatalf("partition ended at %d, want %d", pos, len(text))
	}
}

func lexAll(text string) []Lexeme {
	var out []Lexeme
	pos := 0
	for {
		lx := Lex(text, pos)
		out = append(out, lx)
		if lx.Kind == Eof {
			break
		}
		pos += lx.Length
	}
	return out
}
