package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mppl-lang/mpplc/report"
	"github.com/mppl-lang/mpplc/source"
	"github.com/mppl-lang/mpplc/style"
)

var (
	styleFaint       = style.Style{Faint: true}
	styleText        = style.Style{Foreground: style.Color{Kind: style.Bright8, Standard: style.White}}
	styleMark        = style.Style{Foreground: style.Color{Kind: style.Bright8, Standard: style.Red}}
	styleErrorTag    = style.Style{Bold: true, Foreground: style.Color{Kind: style.Bright8, Standard: style.Red}}
	styleWarnTag     = style.Style{Foreground: style.Color{Kind: style.Bright8, Standard: style.Yellow}}
	styleNoteTag     = style.Style{Foreground: style.Color{Kind: style.Bright8, Standard: style.Cyan}}
)

func severityTag(s report.Severity) (style.Style, string) {
	switch s {
	case report.Error:
		return styleErrorTag, "[ERROR] "
	case report.Warn:
		return styleWarnTag, "[WARN] "
	default:
		return styleNoteTag, "[NOTE] "
	}
}

// annotationSpan is a report.Annotation with its endpoints resolved to
// display locations, carrying the original byte offsets for sorting.
type annotationSpan struct {
	message            string
	byteStart, byteEnd int
	start, end         Location
}

func buildSpans(rpt *report.Report, src *source.Source, tabWidth int) []annotationSpan {
	spans := make([]annotationSpan, len(rpt.Annotations))
	for i, a := range rpt.Annotations {
		endOffset := a.End - 1
		if endOffset < a.Start {
			endOffset = a.Start
		}
		spans[i] = annotationSpan{
			message:   a.Message,
			byteStart: a.Start,
			byteEnd:   a.End,
			start:     displayLocation(src, a.Start, tabWidth),
			end:       displayLocation(src, endOffset, tabWidth),
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].byteStart != spans[j].byteStart {
			return spans[i].byteStart < spans[j].byteStart
		}
		return spans[i].byteEnd < spans[j].byteEnd
	})
	return spans
}

func digits(n int) int {
	d := 1
	for n > 9 {
		n /= 10
		d++
	}
	return d
}

func marginOf(spans []annotationSpan) int {
	max := 0
	for _, s := range spans {
		if n := s.start.Line + 1; n > max {
			max = n
		}
		if n := s.end.Line + 1; n > max {
			max = n
		}
	}
	return digits(max)
}

func gutterNumbered(margin, lineNumber int) string {
	return fmt.Sprintf(" %*d │ ", margin, lineNumber)
}

func gutterBlank(margin int) string {
	return fmt.Sprintf(" %*s │ ", margin, "")
}

func gutterSkip(margin int, bar string) string {
	return fmt.Sprintf(" %*s %s", margin, "", bar)
}

// Render writes one styled diagnostic block for rpt to w.
func Render(w io.Writer, mode style.Mode, rpt *report.Report, src *source.Source, tabWidth int) {
	buf := style.NewBuffer(w, mode)
	cv := newCanvas()
	spans := buildSpans(rpt, src, tabWidth)
	margin := marginOf(spans)

	writeHeadLine(cv, rpt)
	cv.nextLine()
	writeLocationLine(cv, rpt, src, tabWidth, margin)
	if len(spans) != 0 {
		cv.nextLine()
		writeInterestLines(cv, spans, src, tabWidth, margin)
	}
	cv.nextLine()
	writeTailLines(cv, margin)
	cv.print(buf)
	buf.Plain("\n")
}

// RenderAll writes one styled block per report, in order, separated by
// blank lines.
func RenderAll(w io.Writer, mode style.Mode, reports []*report.Report, src *source.Source, tabWidth int) {
	for i, r := range reports {
		if i != 0 {
			fmt.Fprintln(w)
		}
		Render(w, mode, r, src, tabWidth)
	}
}

func writeHeadLine(cv *canvas, rpt *report.Report) {
	tagStyle, tag := severityTag(rpt.Severity)
	cv.draw(tagStyle, tag)
	cv.draw(styleText, rpt.Message)
}

func writeLocationLine(cv *canvas, rpt *report.Report, src *source.Source, tabWidth, margin int) {
	loc := displayLocation(src, rpt.PrimaryOffset, tabWidth)
	cv.draw(styleFaint, " "+strings.Repeat(" ", margin)+" ╭─[")
	cv.draw(styleText, fmt.Sprintf("%s:%d:%d", src.FileName(), loc.Line+1, loc.Column+1))
	cv.draw(styleFaint, "]")
}

func writeTailLines(cv *canvas, margin int) {
	cv.draw(styleFaint, gutterSkip(margin, "│"))
	cv.nextLine()
	cv.draw(styleFaint, "─"+strings.Repeat("─", margin+1)+"╯")
}

func writeInterestLines(cv *canvas, spans []annotationSpan, src *source.Source, tabWidth, margin int) {
	startLine, endLine := spans[0].start.Line, spans[0].end.Line
	for _, s := range spans {
		if s.start.Line < startLine {
			startLine = s.start.Line
		}
		if s.end.Line > endLine {
			endLine = s.end.Line
		}
	}

	previousLine := -1
	first := true
	for line := startLine; line <= endLine; line++ {
		touching := touchingLine(spans, line)
		if len(touching) == 0 {
			continue
		}
		if !first {
			cv.nextLine()
		}
		first = false

		bar := "│"
		if previousLine >= 0 && previousLine+1 != line {
			bar = "┆"
		}
		cv.draw(styleFaint, gutterSkip(margin, bar))
		cv.nextLine()

		writeSourceLine(cv, spans, src, tabWidth, margin, line)
		cv.nextLine()
		writeIndicatorLine(cv, spans, margin, line)
		cv.nextLine()
		writeAnnotationLines(cv, spans, margin, line)

		previousLine = line
	}
}

func touchingLine(spans []annotationSpan, line int) []annotationSpan {
	var out []annotationSpan
	for _, s := range spans {
		if s.start.Line == line || s.end.Line == line {
			out = append(out, s)
		}
	}
	return out
}

// writeAnnotationLeft draws the two-column multiline-stem margin shared
// by the source, indicator, and annotation-lines rows for line, so the
// stems stay aligned across all three row kinds. connect requests the
// corner turn for a multiline annotation whose own last line is line.
func writeAnnotationLeft(cv *canvas, spans []annotationSpan, line int, connect bool) {
	struck := false
	for _, s := range spans {
		if s.start.Line == s.end.Line {
			continue
		}
		switch {
		case struck:
			cv.draw(styleMark, "──")
		case line < s.start.Line || line > s.end.Line:
			cv.draw(style.Style{}, "  ")
		case line < s.end.Line:
			cv.draw(styleMark, "│ ")
		case connect:
			cv.draw(styleMark, "╰─")
			struck = true
		default:
			cv.draw(styleMark, "│ ")
		}
	}
}

func writeSourceLine(cv *canvas, spans []annotationSpan, src *source.Source, tabWidth, margin, line int) {
	cv.draw(styleFaint, gutterNumbered(margin, line+1))
	writeAnnotationLeft(cv, spans, line, false)

	row, col := cv.row(), cv.col()
	cells, _ := expandLine(src.LineText(line), tabWidth)
	width := len(cells)
	cv.draw(styleText, strings.Join(cells, ""))

	type segment struct{ start, end int }
	var segments []segment
	for _, s := range spans {
		switch {
		case s.start.Line == line && s.end.Line == line:
			segments = append(segments, segment{s.start.Column, s.end.Column})
		case s.start.Line == line:
			segments = append(segments, segment{s.start.Column, width - 1})
		case s.end.Line == line:
			segments = append(segments, segment{0, s.end.Column})
		}
	}
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].start != segments[j].start {
			return segments[i].start < segments[j].start
		}
		return segments[i].end > segments[j].end
	})
	for _, sg := range segments {
		end := sg.end
		if end > width-1 {
			end = width - 1
		}
		if end < sg.start || sg.start >= width {
			continue
		}
		cv.seek(row, col+sg.start)
		cv.draw(styleMark, strings.Join(cells[sg.start:end+1], ""))
	}
}

// indicator kinds, ordered to match the original's sort-by-kind rule:
// an inline (single-line) indicator sorts before an annotation ending
// on this line, which sorts before one beginning on this line.
const (
	indicatorInline = iota
	indicatorEnd
	indicatorBegin
)

func writeIndicatorLine(cv *canvas, spans []annotationSpan, margin, line int) {
	cv.draw(styleFaint, gutterBlank(margin))
	writeAnnotationLeft(cv, spans, line, false)
	row, col := cv.row(), cv.col()

	type indicator struct{ kind, column, length int }
	var indicators []indicator
	for _, s := range spans {
		switch {
		case s.start.Line == line && s.end.Line == line:
			indicators = append(indicators, indicator{indicatorInline, s.start.Column, s.end.Column - s.start.Column + 1})
		case s.start.Line == line:
			indicators = append(indicators, indicator{indicatorBegin, s.start.Column, 1})
		case s.end.Line == line:
			indicators = append(indicators, indicator{indicatorEnd, s.end.Column, 1})
		}
	}
	sort.Slice(indicators, func(i, j int) bool {
		a, b := indicators[i], indicators[j]
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		if a.column != b.column {
			return a.column < b.column
		}
		return a.length > b.length
	})
	for _, ind := range indicators {
		cv.seek(row, col+ind.column)
		if ind.kind == indicatorInline {
			cv.draw(styleMark, "┬"+strings.Repeat("─", ind.length-1))
		} else {
			cv.draw(styleMark, "▲")
		}
	}
}

// connector kinds, ordered to match the original's sort-by-kind rule.
const (
	connectorEnd = iota
	connectorBegin
)

func writeAnnotationLines(cv *canvas, spans []annotationSpan, margin, line int) {
	type connector struct {
		message   string
		kind      int
		multiline bool
		column    int
	}
	var connectors []connector
	labelOffset := -1
	for _, s := range spans {
		switch {
		case s.start.Line == line && s.end.Line == line:
			connectors = append(connectors, connector{s.message, connectorEnd, false, s.start.Column})
		case s.start.Line == line:
			connectors = append(connectors, connector{s.message, connectorBegin, true, s.start.Column})
		case s.end.Line == line:
			connectors = append(connectors, connector{s.message, connectorEnd, true, s.end.Column})
		}
		if s.end.Line == line && (labelOffset == -1 || s.end.Column < labelOffset) {
			labelOffset = s.end.Column
		}
	}
	if labelOffset == -1 {
		labelOffset = 0
	}
	sort.Slice(connectors, func(i, j int) bool {
		a, b := connectors[i], connectors[j]
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		return a.column < b.column
	})

	cv.draw(styleFaint, gutterBlank(margin))
	writeAnnotationLeft(cv, spans, line, false)
	row, col := cv.row(), cv.col()

	count := len(connectors)
	for i := 1; i < 2*count-1; i++ {
		cv.nextLine()
		cv.draw(styleFaint, gutterBlank(margin))
		writeAnnotationLeft(cv, spans, line, i%2 == 1)
	}

	for i := count; i > 0; i-- {
		conn := connectors[i-1]
		stemHeight := 2*i - 2
		for j := 0; j < stemHeight; j++ {
			cv.seek(row+j, col+conn.column)
			cv.draw(styleMark, "│")
		}
		targetRow := row + stemHeight
		switch conn.kind {
		case connectorEnd:
			if conn.multiline {
				cv.seek(targetRow, col)
				for k := 0; k < conn.column; k++ {
					cv.draw(styleMark, "─")
				}
				cv.draw(styleMark, "┴")
			} else {
				cv.seek(targetRow, col+conn.column)
				cv.draw(styleMark, "╰")
			}
			for k := conn.column + 1; k < labelOffset+3; k++ {
				cv.draw(styleMark, "─")
			}
			cv.draw(styleText, " "+conn.message)
		case connectorBegin:
			cv.seek(targetRow, col)
			for k := 0; k < conn.column; k++ {
				cv.draw(styleMark, "─")
			}
			cv.draw(styleMark, "╯")
		}
	}
}
