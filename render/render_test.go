package render

import (
	"strings"
	"testing"

	"github.com/mppl-lang/mpplc/report"
	"github.com/mppl-lang/mpplc/source"
	"github.com/mppl-lang/mpplc/style"
)

func renderToString(t *testing.T, rpt *report.Report, src *source.Source) string {
	t.Helper()
	var sb strings.Builder
	Render(&sb, style.Off, rpt, src, DefaultTabWidth)
	return sb.String()
}

func TestRenderHeadLineCarriesSeverityTagAndMessage(t *testing.T) {
	src := source.New("t.mppl", "program P;\nbegin\nend.\n")
	rpt := report.New(0, "unexpected token").WithSeverity(report.Error).
		Annotate(0, 7, "expected a declaration here")
	got := renderToString(t, rpt, src)
	if !strings.Contains(got, "[ERROR] unexpected token") {
		t.Fatalf("output missing head line:\n%s", got)
	}
}

func TestRenderLocationLineUsesOneBasedLineAndColumn(t *testing.T) {
	src := source.New("t.mppl", "program P;\nbegin\n  x := 1\nend.\n")
	rpt := report.New(19, "test").Annotate(19, 20, "here")
	got := renderToString(t, rpt, src)
	if !strings.Contains(got, "t.mppl:3:3") {
		t.Fatalf("output missing location line t.mppl:3:3:\n%s", got)
	}
}

func TestRenderSingleLineAnnotationDrawsIndicatorUnderSpan(t *testing.T) {
	src := source.New("t.mppl", "x := y + 1\n")
	rpt := report.New(5, "type mismatch").Annotate(5, 6, "wrong type")
	got := renderToString(t, rpt, src)
	lines := strings.Split(got, "\n")
	foundSource, foundIndicator := false, false
	for _, l := range lines {
		if strings.Contains(l, "x := y + 1") {
			foundSource = true
		}
		if strings.Contains(l, "┬") {
			foundIndicator = true
		}
	}
	if !foundSource {
		t.Errorf("output missing source line:\n%s", got)
	}
	if !foundIndicator {
		t.Errorf("output missing single-column indicator:\n%s", got)
	}
}

func TestRenderInlineSpanDrawsMultiColumnIndicator(t *testing.T) {
	src := source.New("t.mppl", "x := abc + 1\n")
	rpt := report.New(5, "bad name").Annotate(5, 8, "undefined")
	got := renderToString(t, rpt, src)
	if !strings.Contains(got, "┬──") {
		t.Fatalf("output missing multi-column indicator run:\n%s", got)
	}
}

func TestRenderMultilineAnnotationDrawsStemAndConnector(t *testing.T) {
	src := source.New("t.mppl", "procedure Q;\nbegin\nend;\n")
	// Span from "procedure" (offset 0) through the "end" on the third line.
	rpt := report.New(0, "recursion prohibited").Annotate(0, 22, "call occurs within this body")
	got := renderToString(t, rpt, src)
	if !strings.Contains(got, "╰") && !strings.Contains(got, "┴") {
		t.Fatalf("output missing multiline connector corner:\n%s", got)
	}
	if !strings.Contains(got, "call occurs within this body") {
		t.Fatalf("output missing annotation message:\n%s", got)
	}
}

func TestRenderTwoAnnotationsOnSameLineBothDrawIndicators(t *testing.T) {
	src := source.New("t.mppl", "a := b + c\n")
	rpt := report.New(5, "operands must match").
		Annotate(5, 6, "left operand").
		Annotate(9, 10, "right operand")
	got := renderToString(t, rpt, src)
	if !strings.Contains(got, "left operand") || !strings.Contains(got, "right operand") {
		t.Fatalf("output missing one of the two annotation labels:\n%s", got)
	}
	if n := strings.Count(got, "┬"); n != 2 {
		t.Fatalf("output has %d indicators, want 2:\n%s", n, got)
	}
}

func TestRenderExpandsTabsInSourceLine(t *testing.T) {
	src := source.New("t.mppl", "\tx := 1\n")
	rpt := report.New(1, "test").Annotate(1, 2, "here")
	got := renderToString(t, rpt, src)
	if strings.Contains(got, "\t") {
		t.Fatalf("output should not contain a raw tab character:\n%q", got)
	}
}

func TestRenderGutterWidthMatchesLargestLineNumber(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		sb.WriteString("x := 1\n")
	}
	src := source.New("t.mppl", sb.String())
	lastLineOffset := src.LineStart(10)
	rpt := report.New(lastLineOffset, "test").Annotate(lastLineOffset, lastLineOffset+1, "here")
	got := renderToString(t, rpt, src)
	if !strings.Contains(got, "11 │") {
		t.Fatalf("output missing two-digit gutter for line 11:\n%s", got)
	}
}

func TestRenderAllSeparatesReportsWithBlankLine(t *testing.T) {
	var sb strings.Builder
	src := source.New("t.mppl", "x := 1\ny := 2\n")
	r1 := report.New(0, "first").Annotate(0, 1, "a")
	r2 := report.New(7, "second").Annotate(7, 8, "b")
	RenderAll(&sb, style.Off, []*report.Report{r1, r2}, src, DefaultTabWidth)
	got := sb.String()
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Fatalf("output missing one of the two reports:\n%s", got)
	}
	if !strings.Contains(got, "\n\n[ERROR] second") {
		t.Fatalf("second report not preceded by a blank line:\n%s", got)
	}
}
