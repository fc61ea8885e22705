// Package style implements SGR (ANSI) terminal styling for the
// diagnostic renderer: bold, faint, italic, underline, 8-color,
// 8-color-bright, and 24-bit truecolor foreground/background, gated by
// a tri-state mode and TTY detection.
package style

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Mode controls whether SGR sequences are emitted.
type Mode int

const (
	// Auto emits styling only when the target stream is a TTY.
	Auto Mode = iota
	On
	Off
)

// Color8 is one of the eight standard ANSI colors.
type Color8 int

const (
	Black Color8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// ColorKind distinguishes which color representation a Style uses.
type ColorKind int

const (
	NoColor ColorKind = iota
	Standard8
	Bright8
	Truecolor
)

// Color is a foreground or background color in one of MPPL's three
// supported representations.
type Color struct {
	Kind          ColorKind
	Standard      Color8
	R, G, B       uint8
}

// Style describes the SGR attributes applied to a span of text.
type Style struct {
	Bold, Faint, Italic, Underline bool
	Foreground, Background         Color
}

// Reset is the zero Style. It carries no attributes, so its Sequence is
// empty; ResetSequence is the SGR sequence that clears attributes.
var Reset = Style{}

// IsZero reports whether s carries no attributes at all, in which case
// nothing needs to be emitted.
func (s Style) IsZero() bool {
	return !s.Bold && !s.Faint && !s.Italic && !s.Underline &&
		s.Foreground.Kind == NoColor && s.Background.Kind == NoColor
}

// codes returns the SGR parameter codes for s, in stable order: text
// attributes first, then foreground, then background.
func (s Style) codes() []string {
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Faint {
		codes = append(codes, "2")
	}
	if s.Italic {
		codes = append(codes, "3")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	codes = append(codes, colorCodes(s.Foreground, 30, 90, 38)...)
	codes = append(codes, colorCodes(s.Background, 40, 100, 48)...)
	return codes
}

func colorCodes(c Color, standardBase, brightBase, truecolorSelector int) []string {
	switch c.Kind {
	case Standard8:
		return []string{strconv.Itoa(standardBase + int(c.Standard))}
	case Bright8:
		return []string{strconv.Itoa(brightBase + int(c.Standard))}
	case Truecolor:
		return []string{
			strconv.Itoa(truecolorSelector), "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)),
		}
	default:
		return nil
	}
}

// Sequence renders s as a complete SGR escape sequence, or the empty
// string if s carries no attributes.
func (s Style) Sequence() string {
	if s.IsZero() {
		return ""
	}
	return "\x1b[" + strings.Join(s.codes(), ";") + "m"
}

// ResetSequence is the SGR sequence that clears all attributes.
const ResetSequence = "\x1b[0m"

// Enabled resolves a Mode against a writer, honoring Auto's TTY check.
func Enabled(mode Mode, w io.Writer) bool {
	switch mode {
	case On:
		return true
	case Off:
		return false
	default:
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// Buffer writes styled spans straight through to its writer, with
// styling gated by mode and the destination's TTY-ness.
type Buffer struct {
	mode    Mode
	w       io.Writer
	enabled bool
}

// NewBuffer creates a Buffer that writes to w, resolving mode once up
// front against w.
func NewBuffer(w io.Writer, mode Mode) *Buffer {
	return &Buffer{mode: mode, w: w, enabled: Enabled(mode, w)}
}

// Write emits text styled with s, when styling is enabled, wrapped in
// the style's SGR sequence and a trailing reset.
func (b *Buffer) Write(s Style, text string) {
	if !b.enabled || s.IsZero() {
		fmt.Fprint(b.w, text)
		return
	}
	fmt.Fprint(b.w, s.Sequence(), text, ResetSequence)
}

// Plain emits text with no styling, regardless of mode.
func (b *Buffer) Plain(text string) {
	fmt.Fprint(b.w, text)
}
