// Package resolve implements name resolution over the MPPL syntax tree:
// a scope-stack walk that creates definitions at binders, records
// references at uses, and reports duplicate bindings, unresolved names,
// and prohibited recursion.
package resolve

import "github.com/mppl-lang/mpplc/syntax"

// DefKind classifies what a Def binds.
type DefKind int

const (
	ProgramDef DefKind = iota
	ProcedureDef
	VariableDef
	ParameterDef
)

func (k DefKind) String() string {
	switch k {
	case ProgramDef:
		return "program"
	case ProcedureDef:
		return "procedure"
	case VariableDef:
		return "variable"
	case ParameterDef:
		return "parameter"
	}
	return "unknown"
}

// Def is a binding created at a declaration site. Defs compare by
// identity (pointer equality), never by value, since the same name can
// be legitimately redeclared in a nested, unrelated scope.
type Def struct {
	Kind DefKind
	Name string
	// Start, End is the binding occurrence's span (the identifier token
	// at the declaration site), used to anchor the "previous definition"
	// annotation of a conflicting-definition report.
	Start, End int
	// Decl is the declaring syntax node (Program, VarDecl, ParamSection,
	// or ProcDecl) that introduced this definition.
	Decl *syntax.Node
	// Body is the procedure's compound-statement body, non-nil only for
	// ProcedureDef and ProgramDef. Used by the recursion check: a call
	// whose target's Body is an ancestor of the call site is prohibited.
	Body *syntax.Node
}
