package syntax

// Scanner is a byte iterator with peek/eat capabilities over MPPL source
// text. MPPL's alphabet is the 7-bit graphic set plus tab and newline, so
// the scanner operates directly on bytes rather than decoding runes.
type Scanner struct {
	text   string
	cursor int
}

// NewScanner creates a new scanner for the given text.
func NewScanner(text string) *Scanner {
	return &Scanner{text: text, cursor: 0}
}

// String returns the underlying text being scanned.
func (s *Scanner) String() string {
	return s.text
}

// Cursor returns the current position in the text.
func (s *Scanner) Cursor() int {
	return s.cursor
}

// Jump sets the cursor to the given position, clamped to the text bounds.
func (s *Scanner) Jump(pos int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.text) {
		pos = len(s.text)
	}
	s.cursor = pos
}

// Advance moves the cursor forward by the given number of bytes.
func (s *Scanner) Advance(by int) {
	s.Jump(s.cursor + by)
}

// Done returns true if the scanner has reached the end of the text.
func (s *Scanner) Done() bool {
	return s.cursor >= len(s.text)
}

// Peek returns the next byte without consuming it, or 0 at end.
func (s *Scanner) Peek() byte {
	if s.cursor >= len(s.text) {
		return 0
	}
	return s.text[s.cursor]
}

// Scout looks at the byte at a relative offset from the cursor. Positive
// offsets look ahead, negative offsets look behind. Returns 0 out of bounds.
func (s *Scanner) Scout(offset int) byte {
	pos := s.cursor + offset
	if pos < 0 || pos >= len(s.text) {
		return 0
	}
	return s.text[pos]
}

// Eat consumes and returns the next byte, or 0 at end.
func (s *Scanner) Eat() byte {
	if s.cursor >= len(s.text) {
		return 0
	}
	b := s.text[s.cursor]
	s.cursor++
	return b
}

// Uneat moves back one byte.
func (s *Scanner) Uneat() {
	if s.cursor <= 0 {
		return
	}
	s.cursor--
}

// EatIf consumes the next byte if it matches b.
func (s *Scanner) EatIf(b byte) bool {
	if s.Peek() == b {
		s.Eat()
		return true
	}
	return false
}

// EatIfStr consumes the string if it matches at the current position.
func (s *Scanner) EatIfStr(str string) bool {
	if s.At(str) {
		s.cursor += len(str)
		return true
	}
	return false
}

// EatWhile consumes bytes while the predicate returns true. Returns the
// consumed substring.
func (s *Scanner) EatWhile(pred func(byte) bool) string {
	start := s.cursor
	for !s.Done() && pred(s.Peek()) {
		s.Eat()
	}
	return s.text[start:s.cursor]
}

// EatUntil consumes bytes until the predicate returns true. Returns the
// consumed substring.
func (s *Scanner) EatUntil(pred func(byte) bool) string {
	start := s.cursor
	for !s.Done() && !pred(s.Peek()) {
		s.Eat()
	}
	return s.text[start:s.cursor]
}

// EatNewline consumes a newline sequence (LF, CR, or CRLF). Returns true
// if a newline was consumed.
func (s *Scanner) EatNewline() bool {
	if s.EatIf('\r') {
		s.EatIf('\n')
		return true
	}
	return s.EatIf('\n')
}

// At checks if the current position starts with the given string.
func (s *Scanner) At(str string) bool {
	if s.cursor+len(str) > len(s.text) {
		return false
	}
	return s.text[s.cursor:s.cursor+len(str)] == str
}

// AtByte checks if the current position matches a byte predicate.
func (s *Scanner) AtByte(pred func(byte) bool) bool {
	if s.Done() {
		return false
	}
	return pred(s.Peek())
}

// AtAny checks if the current position matches any of the given bytes.
func (s *Scanner) AtAny(bytes ...byte) bool {
	if s.Done() {
		return false
	}
	b := s.Peek()
	for _, target := range bytes {
		if b == target {
			return true
		}
	}
	return false
}

// Before returns the text before the cursor.
func (s *Scanner) Before() string {
	return s.text[:s.cursor]
}

// After returns the text after the cursor.
func (s *Scanner) After() string {
	return s.text[s.cursor:]
}

// From returns the text from the given position to the cursor.
func (s *Scanner) From(start int) string {
	if start < 0 {
		start = 0
	}
	if start > s.cursor {
		return ""
	}
	return s.text[start:s.cursor]
}

// To returns the text from the cursor to the given position.
func (s *Scanner) To(end int) string {
	if end > len(s.text) {
		end = len(s.text)
	}
	if s.cursor > end {
		return ""
	}
	return s.text[s.cursor:end]
}

// Get returns a substring of the text.
func (s *Scanner) Get(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// Clone creates a copy of the scanner with the same position.
func (s *Scanner) Clone() *Scanner {
	return &Scanner{text: s.text, cursor: s.cursor}
}
