package syntax

import "testing"

func TestKeywordIsCaseSensitiveAndExact(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
		ok   bool
	}{
		{"program", ProgramKw, true},
		{"Program", Ident, false},
		{"PROGRAM", Ident, false},
		{"programs", Ident, false},
		{"div", DivKw, true},
		{"writeln", WritelnKw, true},
		{"x", Ident, false},
	}
	for _, tt := range tests {
		kind, ok := Keyword(tt.text)
		if ok != tt.ok {
			t.Errorf("Keyword(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			continue
		}
		if ok && kind != tt.kind {
			t.Errorf("Keyword(%q) = %v, want %v", tt.text, kind, tt.kind)
		}
	}
}

func TestIsTokenIsTree(t *testing.T) {
	if !Ident.IsToken() {
		t.Error("Ident.IsToken() = false, want true")
	}
	if Ident.IsTree() {
		t.Error("Ident.IsTree() = true, want false")
	}
	if !Program.IsTree() {
		t.Error("Program.IsTree() = false, want true")
	}
	if Program.IsToken() {
		t.Error("Program.IsToken() = true, want false")
	}
}

func TestIsTrivia(t *testing.T) {
	for _, k := range []Kind{Whitespace, BraceComment, CComment} {
		if !k.IsTrivia() {
			t.Errorf("%v.IsTrivia() = false, want true", k)
		}
	}
	for _, k := range []Kind{Ident, Program, Plus} {
		if k.IsTrivia() {
			t.Errorf("%v.IsTrivia() = true, want false", k)
		}
	}
}

func TestIsStandardType(t *testing.T) {
	for _, k := range []Kind{CharKw, IntegerKw, BooleanKw} {
		if !k.IsStandardType() {
			t.Errorf("%v.IsStandardType() = false, want true", k)
		}
	}
	if ArrayKw.IsStandardType() {
		t.Error("ArrayKw.IsStandardType() = true, want false")
	}
}

func TestNameNonEmpty(t *testing.T) {
	for k := Eof; k <= BoolLiteralExpr; k++ {
		if k.Name() == "" {
			t.Errorf("Kind(%d).Name() is empty", k)
		}
		if k.Name() == "unknown" {
			t.Errorf("Kind(%d).Name() = %q, every declared kind should have a name", k, "unknown")
		}
	}
}
