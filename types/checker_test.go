package types

import (
	"testing"

	"github.com/mppl-lang/mpplc/report"
	"github.com/mppl-lang/mpplc/resolve"
	"github.com/mppl-lang/mpplc/syntax"
)

func checkSource(t *testing.T, text string) (*Inference, []*report.Report) {
	t.Helper()
	root, parseReports := syntax.Parse(text)
	if len(parseReports) != 0 {
		t.Fatalf("Parse(%q) produced reports: %+v", text, parseReports)
	}
	res, resolveReports := resolve.Resolve(root)
	if len(resolveReports) != 0 {
		t.Fatalf("Resolve(%q) produced reports: %+v", text, resolveReports)
	}
	return Check(root, res)
}

func messages(reports []*report.Report) []string {
	var out []string
	for _, r := range reports {
		out = append(out, r.Message)
	}
	return out
}

func TestCheckIntegerAssignment(t *testing.T) {
	_, reports := checkSource(t, "program P; var x: integer; begin x := 1 + 2 end.")
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", messages(reports))
	}
}

func TestCheckAssignmentTypeMismatch(t *testing.T) {
	_, reports := checkSource(t, "program P; var x: integer; var y: boolean; begin x := y end.")
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1: %v", len(reports), messages(reports))
	}
	if got, want := reports[0].Message, "type mismatch in assignment"; got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
}

func TestCheckArithmeticRequiresIntegers(t *testing.T) {
	_, reports := checkSource(t, "program P; var x: boolean; var y: integer; begin y := x + 1 end.")
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1: %v", len(reports), messages(reports))
	}
}

func TestCheckRelationalOnEqualStandardTypes(t *testing.T) {
	_, reports := checkSource(t, "program P; var x: boolean; var y: integer; var z: integer; begin x := y < z end.")
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", messages(reports))
	}
}

func TestCheckBooleanOperators(t *testing.T) {
	_, reports := checkSource(t, "program P; var x: boolean; begin x := not x end.")
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", messages(reports))
	}
}

func TestCheckCastExpression(t *testing.T) {
	inf, reports := checkSource(t, "program P; var x: char; begin x := char(65) end.")
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", messages(reports))
	}
	_ = inf
}

func TestCheckArrayIndexingProducesElementType(t *testing.T) {
	_, reports := checkSource(t, "program P; var a: array [10] of integer; var x: integer; begin x := a[0] end.")
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", messages(reports))
	}
}

func TestCheckIndexingNonArrayIsError(t *testing.T) {
	_, reports := checkSource(t, "program P; var x: integer; var y: integer; begin y := x[0] end.")
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1: %v", len(reports), messages(reports))
	}
}

func TestCheckArrayIndexMustBeInteger(t *testing.T) {
	_, reports := checkSource(t, "program P; var a: array [10] of integer; var b: boolean; var x: integer; begin x := a[b] end.")
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1: %v", len(reports), messages(reports))
	}
}

func TestCheckSingleCharStringLiteralIsAssignableToChar(t *testing.T) {
	_, reports := checkSource(t, "program P; var x: char; begin x := 'a' end.")
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", messages(reports))
	}
}

func TestCheckMultiCharStringLiteralIsNotAssignableToChar(t *testing.T) {
	// A string literal longer than one byte infers to the string type,
	// which is not a standard type and so cannot assign to a char.
	_, reports := checkSource(t, "program P; var x: char; begin x := 'hi' end.")
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1: %v", len(reports), messages(reports))
	}
}

func TestCheckProcedureTypeFromParams(t *testing.T) {
	root, parseReports := syntax.Parse("program P; procedure Q(x: integer; y: boolean); begin end; begin end.")
	if len(parseReports) != 0 {
		t.Fatalf("parse reports: %v", parseReports)
	}
	res, resolveReports := resolve.Resolve(root)
	if len(resolveReports) != 0 {
		t.Fatalf("resolve reports: %v", resolveReports)
	}
	inf, reports := Check(root, res)
	if len(reports) != 0 {
		t.Fatalf("unexpected reports: %v", messages(reports))
	}
	found := false
	for def, typ := range inf.DefTypes {
		if def.Kind == resolve.ProcedureDef && def.Name == "Q" {
			found = true
			if typ.Kind != Procedure || len(typ.Params) != 2 {
				t.Errorf("Q's type = %v, want procedure(integer, boolean)", typ)
			}
		}
	}
	if !found {
		t.Fatal("no Def recorded for procedure Q")
	}
}
