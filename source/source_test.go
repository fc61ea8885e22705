package source

import "testing"

func TestLineOffsetsLF(t *testing.T) {
	s := New("t.mppl", "abc\ndef\nghi")
	if s.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", s.LineCount())
	}
	if got := s.LineText(0); got != "abc" {
		t.Errorf("LineText(0) = %q, want %q", got, "abc")
	}
	if got := s.LineText(2); got != "ghi" {
		t.Errorf("LineText(2) = %q, want %q", got, "ghi")
	}
}

func TestLineOffsetsCRLF(t *testing.T) {
	s := New("t.mppl", "abc\r\ndef\r\nghi")
	if s.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", s.LineCount())
	}
	if got := s.LineText(1); got != "def" {
		t.Errorf("LineText(1) = %q, want %q", got, "def")
	}
}

func TestLineOffsetsMixedCR(t *testing.T) {
	s := New("t.mppl", "abc\rdef\nghi")
	if s.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", s.LineCount())
	}
}

func TestPosition(t *testing.T) {
	s := New("t.mppl", "abc\ndef\nghi")
	cases := []struct {
		offset       int
		line, column int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{4, 1, 0},
		{7, 1, 3},
		{8, 2, 0},
	}
	for _, c := range cases {
		line, col := s.Position(c.offset)
		if line != c.line || col != c.column {
			t.Errorf("Position(%d) = (%d, %d), want (%d, %d)", c.offset, line, col, c.line, c.column)
		}
	}
}

func TestPositionClampsOutOfRange(t *testing.T) {
	s := New("t.mppl", "abc")
	line, col := s.Position(1000)
	if line != 0 || col != 3 {
		t.Errorf("Position(1000) = (%d, %d), want (0, 3)", line, col)
	}
}
