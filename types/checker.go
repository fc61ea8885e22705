package types

import (
	"strconv"
	"strings"

	"github.com/mppl-lang/mpplc/report"
	"github.com/mppl-lang/mpplc/resolve"
	"github.com/mppl-lang/mpplc/syntax"
)

type checker struct {
	res     *resolve.Resolution
	inf     *Inference
	reports []*report.Report
	spans   map[*syntax.Node][2]int
}

// Check runs the two interleaved passes over root: definition typing on
// entry (computing a Type for every variable, parameter, and procedure
// declaration from its declared-type syntax) and expression typing on
// exit (a post-order walk assigning a Type to every expression node),
// using res to resolve identifiers to their definitions.
func Check(root *syntax.Node, res *resolve.Resolution) (*Inference, []*report.Report) {
	c := &checker{
		res:   res,
		inf:   newInference(),
		spans: make(map[*syntax.Node][2]int),
	}
	syntax.Walk(root, 0, func(n *syntax.Node, start, end int) {
		c.spans[n] = [2]int{start, end}
	})
	c.walk(root)
	return c.inf, c.reports
}

func (c *checker) span(n *syntax.Node) (int, int) {
	s := c.spans[n]
	return s[0], s[1]
}

func (c *checker) walk(n *syntax.Node) {
	switch n.Kind() {
	case syntax.VarDecl:
		c.enterNameListDecl(n)
	case syntax.ParamSection:
		c.enterNameListDecl(n)
	case syntax.ProcDecl:
		c.enterProcDecl(n)
	}

	for _, child := range n.Children() {
		c.walk(child)
	}

	switch n.Kind() {
	case syntax.IntLiteralExpr:
		c.inf.ExprTypes[n] = IntegerType
	case syntax.StringLiteralExpr:
		c.exitStringLiteral(n)
	case syntax.BoolLiteralExpr:
		c.inf.ExprTypes[n] = BooleanType
	case syntax.EntireVar:
		c.exitEntireVar(n)
	case syntax.IndexedVar:
		c.exitIndexedVar(n)
	case syntax.ParenExpr:
		c.inf.ExprTypes[n] = c.inf.TypeOf(n.Children()[1])
	case syntax.UnaryExpr:
		c.exitUnaryExpr(n)
	case syntax.BinaryExpr:
		c.exitBinaryExpr(n)
	case syntax.CastExpr:
		c.exitCastExpr(n)
	case syntax.AssignStmt:
		c.exitAssignStmt(n)
	}
}

// typeFromSyntax computes a Type from a declared-type syntax node: a
// bare standard-type keyword token, or an ArrayType tree.
func typeFromSyntax(n *syntax.Node) Type {
	switch n.Kind() {
	case syntax.CharKw:
		return CharType
	case syntax.IntegerKw:
		return IntegerType
	case syntax.BooleanKw:
		return BooleanType
	case syntax.ArrayType:
		children := n.Children() // ArrayKw LBracket IntLiteral RBracket OfKw standardType
		size, _ := strconv.Atoi(children[2].TokenText())
		elem := typeFromSyntax(children[5])
		return ArrayOf(elem, size)
	}
	return InvalidType
}

// enterNameListDecl handles VarDecl and ParamSection, which share the
// shape `name_list : type`. VarDecl is [VarKw NameList Colon Type
// Semicolon] and ParamSection is [NameList Colon Type], so the name
// list and type are read at fixed child indices for each kind.
func (c *checker) enterNameListDecl(n *syntax.Node) {
	children := n.Children()
	var nameList, typeNode *syntax.Node
	switch n.Kind() {
	case syntax.VarDecl:
		nameList, typeNode = children[1], children[3]
	case syntax.ParamSection:
		nameList, typeNode = children[0], children[2]
	default:
		return
	}
	t := typeFromSyntax(typeNode)
	for _, ident := range nameList.Children() {
		if ident.Kind() != syntax.Ident {
			continue
		}
		if def, ok := c.res.Binders[ident]; ok {
			c.inf.DefTypes[def] = t
		}
	}
}

func (c *checker) enterProcDecl(n *syntax.Node) {
	children := n.Children() // ProcedureKw Ident FormalParams Semicolon DeclPart CompoundStmt Semicolon
	nameTok := children[1]
	def, ok := c.res.Binders[nameTok]
	if !ok {
		return
	}
	var params []Type
	formalParams := children[2]
	if formalParams.Kind() == syntax.FormalParams {
		for _, section := range formalParams.Children() {
			if section.Kind() != syntax.ParamSection {
				continue
			}
			secChildren := section.Children() // NameList Colon Type
			t := typeFromSyntax(secChildren[2])
			for _, ident := range secChildren[0].Children() {
				if ident.Kind() == syntax.Ident {
					params = append(params, t)
				}
			}
		}
	}
	c.inf.DefTypes[def] = ProcedureOf(params)
}

// decodeStringLiteral strips the surrounding quotes and collapses
// doubled quotes into one, mirroring the lexer's own escape rule.
func decodeStringLiteral(tokenText string) string {
	if len(tokenText) < 2 {
		return ""
	}
	inner := tokenText[1 : len(tokenText)-1]
	return strings.ReplaceAll(inner, "''", "'")
}

func (c *checker) exitStringLiteral(n *syntax.Node) {
	value := decodeStringLiteral(n.Children()[0].TokenText())
	if len(value) == 1 {
		c.inf.ExprTypes[n] = CharType
	} else {
		c.inf.ExprTypes[n] = StringType
	}
}

func (c *checker) exitEntireVar(n *syntax.Node) {
	tok := n.Children()[0]
	def, ok := c.res.Uses[tok]
	if !ok {
		c.inf.ExprTypes[n] = InvalidType
		return
	}
	c.inf.ExprTypes[n] = c.inf.TypeOfDef(def)
}

func (c *checker) exitIndexedVar(n *syntax.Node) {
	children := n.Children() // Ident LBracket Expr RBracket
	tok, indexExpr := children[0], children[2]
	indexType := c.inf.TypeOf(indexExpr)

	result := InvalidType
	def, ok := c.res.Uses[tok]
	if ok {
		arrType := c.inf.TypeOfDef(def)
		switch arrType.Kind {
		case Array:
			result = *arrType.Elem
		case Invalid:
			// Already reported elsewhere (unresolved name).
		default:
			start, end := c.span(tok)
			msg := "\"" + def.Name + "\" is not an array"
			c.reports = append(c.reports, report.New(start, msg).
				Annotate(start, end, "has type "+arrType.String()))
		}
	}

	if indexType.Kind != Integer && indexType.Kind != Invalid {
		start, end := c.span(indexExpr)
		msg := "array index must be an integer"
		c.reports = append(c.reports, report.New(start, msg).
			Annotate(start, end, "has type "+indexType.String()))
	}
	c.inf.ExprTypes[n] = result
}

func (c *checker) exitUnaryExpr(n *syntax.Node) {
	children := n.Children() // op operand
	op, operand := children[0], children[1]
	operandType := c.inf.TypeOf(operand)

	var result Type
	var want string
	switch op.Kind() {
	case syntax.NotKw:
		want = "boolean"
		if operandType.Kind == Boolean {
			result = BooleanType
		} else {
			result = InvalidType
		}
	case syntax.Plus, syntax.Minus:
		want = "integer"
		if operandType.Kind == Integer {
			result = IntegerType
		} else {
			result = InvalidType
		}
	default:
		result = InvalidType
	}

	if result.Kind == Invalid && operandType.Kind != Invalid {
		start, end := c.span(op)
		operandStart, operandEnd := c.span(operand)
		msg := op.Kind().Name() + " requires a " + want + " operand"
		c.reports = append(c.reports, report.New(start, msg).
			Annotate(start, end, "operator here").
			Annotate(operandStart, operandEnd, "has type "+operandType.String()))
	}
	c.inf.ExprTypes[n] = result
}

func (c *checker) exitBinaryExpr(n *syntax.Node) {
	children := n.Children() // left op right
	left, opTok, right := children[0], children[1], children[2]
	leftType, rightType := c.inf.TypeOf(left), c.inf.TypeOf(right)
	op := opTok.Kind()

	result := InvalidType
	valid := false
	var want string
	switch {
	case syntax.RelationalOpSet.Contains(op):
		want = "two operands of the same standard type"
		if leftType.IsStandard() && rightType.IsStandard() && leftType.Equal(rightType) {
			result, valid = BooleanType, true
		}
	case op == syntax.Plus || op == syntax.Minus || op == syntax.Star || op == syntax.DivKw:
		want = "two integer operands"
		if leftType.Kind == Integer && rightType.Kind == Integer {
			result, valid = IntegerType, true
		}
	case op == syntax.OrKw || op == syntax.AndKw:
		want = "two boolean operands"
		if leftType.Kind == Boolean && rightType.Kind == Boolean {
			result, valid = BooleanType, true
		}
	}

	if !valid && leftType.Kind != Invalid && rightType.Kind != Invalid {
		start, end := c.span(opTok)
		leftStart, leftEnd := c.span(left)
		rightStart, rightEnd := c.span(right)
		msg := opTok.Kind().Name() + " requires " + want
		c.reports = append(c.reports, report.New(start, msg).
			Annotate(start, end, "operator here").
			Annotate(leftStart, leftEnd, "has type "+leftType.String()).
			Annotate(rightStart, rightEnd, "has type "+rightType.String()))
	}
	c.inf.ExprTypes[n] = result
}

func (c *checker) exitCastExpr(n *syntax.Node) {
	children := n.Children() // standardType LParen Expr RParen
	target := typeFromSyntax(children[0])
	inner := c.inf.TypeOf(children[2])
	if !inner.IsStandard() && inner.Kind != Invalid {
		start, end := c.span(children[2])
		msg := "cannot cast a " + inner.String() + " value"
		c.reports = append(c.reports, report.New(start, msg).Annotate(start, end, "has type "+inner.String()))
	}
	c.inf.ExprTypes[n] = target
}

func (c *checker) exitAssignStmt(n *syntax.Node) {
	children := n.Children() // variable Assign expr
	variable, expr := children[0], children[2]
	leftType, rightType := c.inf.TypeOf(variable), c.inf.TypeOf(expr)

	if leftType.Kind == Invalid {
		return
	}
	if !leftType.IsStandard() {
		start, end := c.span(variable)
		msg := "assignment target must be a standard-typed variable"
		c.reports = append(c.reports, report.New(start, msg).Annotate(start, end, "has type "+leftType.String()))
		return
	}
	if rightType.Kind != Invalid && !leftType.Equal(rightType) {
		leftStart, leftEnd := c.span(variable)
		rightStart, rightEnd := c.span(expr)
		msg := "type mismatch in assignment"
		c.reports = append(c.reports, report.New(leftStart, msg).
			Annotate(leftStart, leftEnd, "target has type "+leftType.String()).
			Annotate(rightStart, rightEnd, "value has type "+rightType.String()))
	}
}
