package syntax

import (
	"golang.org/x/text/unicode/runenames"
)

// ErrorKind classifies a lexical error attached to a Lexeme's Status.
type ErrorKind uint8

const (
	// NoError means the lexeme was recognized without complaint.
	NoError ErrorKind = iota
	UnterminatedString
	UnterminatedComment
	NongraphicInString
	NumberTooLarge
	StringTooLong
	StrayChar
)

// String names the error kind for diagnostic messages.
func (e ErrorKind) String() string {
	switch e {
	case NoError:
		return "no error"
	case UnterminatedString:
		return "unterminated string"
	case UnterminatedComment:
		return "unterminated comment"
	case NongraphicInString:
		return "non-graphic character in string"
	case NumberTooLarge:
		return "number too large"
	case StringTooLong:
		return "string literal too long"
	case StrayChar:
		return "stray character"
	}
	return "unknown error"
}

// Status is the lexing status attached to a Lexeme.
type Status struct {
	Ok  bool
	Eof bool
	Err ErrorKind
}

// Lexeme is the pure result of classifying the longest valid prefix of
// text starting at an offset: a kind, a byte length, and a status.
type Lexeme struct {
	Kind   Kind
	Length int
	Status Status
}

// MaxNumberValue is the largest unsigned number MPPL accepts (§6).
const MaxNumberValue = 32767

// MaxStringLength is the maximum byte length of a string literal's
// decoded content (§9, resolved open question: 1023 bytes normative).
const MaxStringLength = 1023

// Lex classifies the longest prefix of text beginning at start into one
// lexeme. It is a pure function: it reads no state outside text and
// start, and returns the identical result for identical arguments.
func Lex(text string, start int) Lexeme {
	s := NewScanner(text)
	s.Jump(start)

	if s.Done() {
		return Lexeme{Kind: Eof, Length: 0, Status: Status{Ok: true, Eof: true}}
	}

	c := s.Peek()
	switch {
	case isIdentStart(c):
		return lexIdentOrKeyword(s)
	case isDigit(c):
		return lexNumber(s)
	case c == '\'':
		return lexString(s)
	case isWhitespaceByte(c):
		return lexWhitespace(s)
	case c == '{':
		return lexBraceComment(s)
	case c == '/' && s.Scout(1) == '*':
		return lexCComment(s)
	default:
		if kind, length, ok := lexSymbol(s); ok {
			return Lexeme{Kind: kind, Length: length, Status: Status{Ok: true}}
		}
		s.Eat()
		return Lexeme{Kind: Bad, Length: s.Cursor() - start, Status: Status{Err: StrayChar}}
	}
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWhitespaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func lexIdentOrKeyword(s *Scanner) Lexeme {
	start := s.Cursor()
	s.EatWhile(isIdentContinue)
	text := s.From(start)
	kind := Ident
	if kw, ok := Keyword(text); ok {
		kind = kw
	}
	return Lexeme{Kind: kind, Length: len(text), Status: Status{Ok: true}}
}

func lexNumber(s *Scanner) Lexeme {
	digits := s.EatWhile(isDigit)
	value := 0
	overflowed := false
	for i := 0; i < len(digits); i++ {
		value = value*10 + int(digits[i]-'0')
		if value > MaxNumberValue {
			overflowed = true
		}
	}
	if overflowed {
		return Lexeme{Kind: IntLiteral, Length: len(digits), Status: Status{Err: NumberTooLarge}}
	}
	return Lexeme{Kind: IntLiteral, Length: len(digits), Status: Status{Ok: true}}
}

// lexString scans a single-quote delimited string literal. `''` embeds a
// literal quote. A newline or EOF before the closing quote is an
// unterminated string; a byte that is neither graphic ASCII nor
// space/tab is a non-graphic-in-string error; decoded content over
// MaxStringLength bytes is a string-too-long error. Errors are checked
// in the order they are discovered and the first one wins, matching the
// lexer's single-status-per-lexeme model.
func lexString(s *Scanner) Lexeme {
	start := s.Cursor()
	s.Eat() // opening quote
	decoded := 0
	err := NoError
	for {
		if s.Done() {
			err = firstErr(err, UnterminatedString)
			break
		}
		c := s.Peek()
		if c == '\r' || c == '\n' {
			err = firstErr(err, UnterminatedString)
			break
		}
		if c == '\'' {
			s.Eat()
			if s.Peek() == '\'' {
				s.Eat()
				decoded++
				continue
			}
			break // closing quote
		}
		if !isStringGraphic(c) {
			err = firstErr(err, NongraphicInString)
		}
		s.Eat()
		decoded++
	}
	if decoded > MaxStringLength {
		err = firstErr(err, StringTooLong)
	}
	status := Status{Ok: err == NoError, Err: err}
	return Lexeme{Kind: StringLiteral, Length: s.Cursor() - start, Status: status}
}

// firstErr keeps the earliest-discovered error, never overwriting one
// already recorded.
func firstErr(current, next ErrorKind) ErrorKind {
	if current != NoError {
		return current
	}
	return next
}

func isStringGraphic(c byte) bool {
	if c == ' ' || c == '\t' {
		return true
	}
	return c >= 0x20 && c < 0x7F
}

func lexWhitespace(s *Scanner) Lexeme {
	start := s.Cursor()
	s.EatWhile(isWhitespaceByte)
	return Lexeme{Kind: Whitespace, Length: s.Cursor() - start, Status: Status{Ok: true}}
}

// lexBraceComment scans a `{ ... }` comment, non-nesting.
func lexBraceComment(s *Scanner) Lexeme {
	start := s.Cursor()
	s.Eat() // '{'
	for {
		if s.Done() {
			return Lexeme{Kind: BraceComment, Length: s.Cursor() - start, Status: Status{Err: UnterminatedComment}}
		}
		if s.Eat() == '}' {
			return Lexeme{Kind: BraceComment, Length: s.Cursor() - start, Status: Status{Ok: true}}
		}
	}
}

// lexCComment scans a `/* ... */` comment, non-nesting.
func lexCComment(s *Scanner) Lexeme {
	start := s.Cursor()
	s.Eat() // '/'
	s.Eat() // '*'
	for {
		if s.Done() {
			return Lexeme{Kind: CComment, Length: s.Cursor() - start, Status: Status{Err: UnterminatedComment}}
		}
		if s.At("*/") {
			s.Advance(2)
			return Lexeme{Kind: CComment, Length: s.Cursor() - start, Status: Status{Ok: true}}
		}
		s.Eat()
	}
}

var twoByteSymbols = map[string]Kind{
	"<>": NotEqual,
	"<=": LessEqual,
	">=": GreaterEqual,
	":=": Assign,
}

var oneByteSymbols = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'=': Equal,
	'<': Less,
	'>': Greater,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	':': Colon,
	'.': Dot,
	',': Comma,
	';': Semicolon,
}

// lexSymbol recognizes punctuation and operator symbols, longest match
// first so that e.g. `<=` is not split into `<` and `=`.
func lexSymbol(s *Scanner) (Kind, int, bool) {
	start := s.Cursor()
	for text, kind := range twoByteSymbols {
		if s.At(text) {
			s.Advance(2)
			return kind, s.Cursor() - start, true
		}
	}
	if kind, ok := oneByteSymbols[s.Peek()]; ok {
		s.Eat()
		return kind, s.Cursor() - start, true
	}
	return 0, 0, false
}

// StrayByteName returns a human-readable name for an unrecognized byte,
// used by the stray-character diagnostic.
func StrayByteName(b byte) string {
	name := runenames.Name(rune(b))
	if name == "" {
		return "<unknown>"
	}
	return name
}
