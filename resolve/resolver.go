package resolve

import (
	"github.com/mppl-lang/mpplc/report"
	"github.com/mppl-lang/mpplc/syntax"
)

// resolver carries the state threaded through the single recursive walk:
// the accumulated spans (computed once up front rather than stored on
// nodes), the resolution being built, the reports raised so far, and
// the stack of enclosing procedure/program bodies used by the
// recursion check. None of this is stored on the tree itself; it is
// explicit ancestor context passed through the walk, per the rule
// against back-pointers.
type resolver struct {
	spans     map[*syntax.Node][2]int
	res       *Resolution
	reports   []*report.Report
	bodyStack []*syntax.Node
}

// Resolve performs name resolution over a parsed program, returning the
// binder/use maps and any diagnostics raised along the way. Resolution
// proceeds even after an error, so later errors in sibling scopes are
// still reported in one pass.
func Resolve(root *syntax.Node) (*Resolution, []*report.Report) {
	r := &resolver{
		spans: make(map[*syntax.Node][2]int),
		res:   newResolution(),
	}
	syntax.Walk(root, 0, func(n *syntax.Node, start, end int) {
		r.spans[n] = [2]int{start, end}
	})
	r.walk(root, nil)
	return r.res, r.reports
}

func (r *resolver) span(n *syntax.Node) (int, int) {
	s := r.spans[n]
	return s[0], s[1]
}

// walk dispatches on n's kind, handling the constructs that create
// scopes, definitions, or references, and otherwise recursing into every
// child under the current scope unchanged.
func (r *resolver) walk(n *syntax.Node, scope *Scope) {
	switch n.Kind() {
	case syntax.Program:
		r.resolveProgram(n, scope)
	case syntax.ProcDecl:
		r.resolveProcDecl(n, scope)
	case syntax.VarDecl:
		r.resolveVarDecl(n, scope)
	case syntax.ParamSection:
		r.resolveParamSection(n, scope)
	case syntax.EntireVar:
		r.resolveEntireVar(n, scope)
	case syntax.IndexedVar:
		r.resolveIndexedVar(n, scope)
	case syntax.CallStmt:
		r.resolveCallStmt(n, scope)
	default:
		for _, c := range n.Children() {
			r.walk(c, scope)
		}
	}
}

func (r *resolver) resolveProgram(n *syntax.Node, _ *Scope) {
	children := n.Children() // ProgramKw Ident Semicolon DeclPart CompoundStmt Dot Eof
	nameTok := children[1]
	start, end := r.span(nameTok)
	def := &Def{Kind: ProgramDef, Name: nameTok.TokenText(), Start: start, End: end, Decl: n, Body: children[4]}
	r.res.Binders[nameTok] = def

	inner := newScope(nil)
	r.walk(children[3], inner) // decl part
	r.bodyStack = append(r.bodyStack, children[4])
	r.walk(children[4], inner) // compound stmt
	r.bodyStack = r.bodyStack[:len(r.bodyStack)-1]
}

func (r *resolver) resolveProcDecl(n *syntax.Node, scope *Scope) {
	children := n.Children() // ProcedureKw Ident FormalParams Semicolon DeclPart CompoundStmt Semicolon
	nameTok := children[1]
	start, end := r.span(nameTok)
	body := children[5]
	def := &Def{Kind: ProcedureDef, Name: nameTok.TokenText(), Start: start, End: end, Decl: n, Body: body}
	r.defineOrReport(scope, def, nameTok)

	inner := newScope(scope)
	r.walk(children[2], inner) // formal params (or Empty)
	r.walk(children[4], inner) // nested decl part
	r.bodyStack = append(r.bodyStack, body)
	r.walk(body, inner)
	r.bodyStack = r.bodyStack[:len(r.bodyStack)-1]
}

func (r *resolver) resolveVarDecl(n *syntax.Node, scope *Scope) {
	children := n.Children() // VarKw NameList Colon Type Semicolon
	r.defineNameList(children[1], scope, VariableDef, n)
}

func (r *resolver) resolveParamSection(n *syntax.Node, scope *Scope) {
	children := n.Children() // NameList Colon Type
	r.defineNameList(children[0], scope, ParameterDef, n)
}

func (r *resolver) defineNameList(nameList *syntax.Node, scope *Scope, kind DefKind, decl *syntax.Node) {
	for _, c := range nameList.Children() {
		if c.Kind() != syntax.Ident {
			continue
		}
		start, end := r.span(c)
		def := &Def{Kind: kind, Name: c.TokenText(), Start: start, End: end, Decl: decl}
		r.defineOrReport(scope, def, c)
	}
}

func (r *resolver) defineOrReport(scope *Scope, def *Def, nameTok *syntax.Node) {
	if prev, ok := scope.define(def); !ok {
		start, end := r.span(nameTok)
		msg := "conflicting definition of \"" + def.Name + "\""
		rpt := report.New(start, msg).
			Annotate(prev.Start, prev.End, "previous definition of \""+def.Name+"\"").
			Annotate(start, end, "redefinition of \""+def.Name+"\"")
		r.reports = append(r.reports, rpt)
		return
	}
	r.res.Binders[nameTok] = def
}

func (r *resolver) resolveEntireVar(n *syntax.Node, scope *Scope) {
	tok := n.Children()[0]
	r.resolveReference(tok, scope, "variable")
}

func (r *resolver) resolveIndexedVar(n *syntax.Node, scope *Scope) {
	children := n.Children() // Ident LBracket Expr RBracket
	r.resolveReference(children[0], scope, "variable")
	r.walk(children[2], scope)
}

func (r *resolver) resolveCallStmt(n *syntax.Node, scope *Scope) {
	children := n.Children() // CallKw Ident ActualParams
	nameTok := children[1]
	def := r.resolveReference(nameTok, scope, "procedure")
	if def != nil && def.Kind == ProcedureDef {
		for _, body := range r.bodyStack {
			if body == def.Body {
				start, end := r.span(nameTok)
				bodyStart, bodyEnd := r.span(def.Body)
				msg := "recursion prohibited: call to \"" + def.Name + "\" from within its own body"
				rpt := report.New(start, msg).
					Annotate(start, end, msg).
					Annotate(bodyStart, bodyEnd, "body of \""+def.Name+"\"")
				r.reports = append(r.reports, rpt)
				break
			}
		}
	}
	r.walk(children[2], scope)
}

// resolveReference looks name up in scope, recording a use on success
// and raising an "unresolved <what>" report on failure.
func (r *resolver) resolveReference(tok *syntax.Node, scope *Scope, what string) *Def {
	name := tok.TokenText()
	def, ok := scope.lookup(name)
	if !ok {
		start, end := r.span(tok)
		msg := "unresolved " + what + " \"" + name + "\""
		r.reports = append(r.reports, report.New(start, msg).Annotate(start, end, msg))
		return nil
	}
	r.res.Uses[tok] = def
	return def
}
