// Package syntax: this file implements the LL(1) recursive-descent
// parser. A rule returns local success or local failure; local failure
// on the first element of a rule lets the caller try the next
// alternative, since MPPL's grammar is dispatched by a single token of
// lookahead at every choice point. Local failure after any element has
// been consumed is promoted to a fatal parse error that terminates the
// parse, per the minimal error-recovery policy.
package syntax

import "github.com/mppl-lang/mpplc/report"

// abort is the sentinel panic value used to unwind out of a failed
// parse back to Parse's recover, since MPPL's error recovery policy is
// to stop at the first parse error rather than resynchronize.
type abort struct{}

type parser struct {
	text     string
	pos      int
	builder  *Builder
	kind     Kind
	tokStart int
	tokText  string
	expected SyntaxSet
	report   *report.Report
}

// Parse parses text into a Program tree and returns the root node plus
// any reports accumulated (at most one, since parsing stops at the
// first error). The root is nil when the parse stopped at a syntax
// error.
func Parse(text string) (*Node, []*report.Report) {
	p := &parser{text: text, builder: NewBuilder()}
	p.advance()

	aborted := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(abort); !ok {
					panic(r)
				}
				aborted = true
			}
		}()
		p.parseProgram()
	}()

	var reports []*report.Report
	if p.report != nil {
		reports = append(reports, p.report)
	}
	if aborted {
		return nil, reports
	}
	root := p.builder.Finish()
	return root, reports
}

// advance lexes trivia into the builder and then the next real token,
// making it the parser's current token.
func (p *parser) advance() {
	for {
		lx := Lex(p.text, p.pos)
		if lx.Kind.IsTrivia() {
			text := p.text[p.pos : p.pos+lx.Length]
			p.builder.Trivia(lx.Kind, text)
			if lx.Status.Err != NoError {
				p.tokStart, p.tokText = p.pos, text
				p.lexError(lx.Status.Err)
			}
			p.pos += lx.Length
			continue
		}
		p.tokStart = p.pos
		p.tokText = p.text[p.pos : p.pos+lx.Length]
		p.kind = lx.Kind
		p.pos += lx.Length
		if lx.Status.Err != NoError {
			p.lexError(lx.Status.Err)
		}
		return
	}
}

func (p *parser) lexError(err ErrorKind) {
	if p.report != nil {
		return
	}
	var msg string
	switch err {
	case UnterminatedString:
		msg = "unterminated string"
	case UnterminatedComment:
		msg = "unterminated comment"
	case NongraphicInString:
		msg = "non-graphic character in string"
	case NumberTooLarge:
		msg = "number too large"
	case StringTooLong:
		msg = "string literal exceeds 1023 bytes"
	case StrayChar:
		b := byte(0)
		if len(p.tokText) > 0 {
			b = p.tokText[0]
		}
		msg = "stray character '" + p.tokText + "' (" + StrayByteName(b) + ")"
	}
	p.report = report.New(p.tokStart, msg).Annotate(p.tokStart, p.tokStart+len(p.tokText), msg)
}

func (p *parser) at(kind Kind) bool {
	return p.kind == kind
}

func (p *parser) atSet(set SyntaxSet) bool {
	return set.Contains(p.kind)
}

// eat emits the current token and clears the accumulated expected set.
func (p *parser) eat() {
	p.builder.Token(p.kind, p.tokText)
	p.expected = NewSyntaxSet()
	p.advance()
}

// expect consumes the given kind or fails with a promoted parse error.
func (p *parser) expect(kind Kind) bool {
	if p.at(kind) {
		p.eat()
		return true
	}
	p.expected = p.expected.Add(kind)
	p.fail()
	return false
}

// fail raises a fatal "expected one of ..." parse error and unwinds to
// Parse's recover.
func (p *parser) fail() {
	if p.report == nil {
		thing := expectedSetName(p.expected)
		msg := "expected " + thing + " but found " + p.kind.Name()
		p.report = report.New(p.tokStart, msg).
			Annotate(p.tokStart, p.tokStart+len(p.tokText), "found "+p.kind.Name())
	}
	panic(abort{})
}

// unexpected raises a fatal error for a token that starts no known
// production in the current context.
func (p *parser) unexpected() {
	p.fail()
}

func expectedSetName(set SyntaxSet) string {
	kinds := set.Kinds()
	if len(kinds) == 0 {
		return "a token"
	}
	if len(kinds) == 1 {
		return kinds[0].Name()
	}
	out := "one of "
	for i, k := range kinds {
		if i > 0 {
			out += ", "
		}
		out += k.Name()
	}
	return out
}

// --- Grammar ---
//
// program        := PROGRAM_KW ident SEMI decl_part compound_stmt DOT EOF
// decl_part      := (var_decl | proc_decl)*
// var_decl       := VAR_KW name_list COLON type SEMI
// name_list      := ident (COMMA ident)*
// type           := standard_type | ARRAY_KW LBRACKET number RBRACKET OF_KW standard_type
// proc_decl      := PROCEDURE_KW ident formal_params? SEMI decl_part compound_stmt SEMI
// formal_params  := LPAREN param_section (SEMI param_section)* RPAREN
// param_section  := name_list COLON type
// statement      := assign | if | while | break | call | return | read | write | compound | empty
// compound_stmt  := BEGIN_KW statement (SEMI statement)* END_KW
// expr precedence: relational -> additive(or) -> multiplicative(div,and) -> unary -> primary

func (p *parser) parseProgram() {
	cp := p.builder.Open()
	p.expect(ProgramKw)
	p.expect(Ident)
	p.expect(Semicolon)
	p.parseDeclPart()
	p.parseCompoundStmt()
	p.expect(Dot)
	if !p.at(Eof) {
		p.expected = p.expected.Add(Eof)
		p.fail()
	}
	p.eat()
	p.builder.Close(Program, cp)
}

var declStartSet = SyntaxSetOf(VarKw, ProcedureKw)

func (p *parser) parseDeclPart() {
	cp := p.builder.Open()
	for p.atSet(declStartSet) {
		switch p.kind {
		case VarKw:
			p.parseVarDecl()
		case ProcedureKw:
			p.parseProcDecl()
		}
	}
	p.builder.Close(DeclPart, cp)
}

func (p *parser) parseVarDecl() {
	cp := p.builder.Open()
	p.expect(VarKw)
	p.parseNameList()
	p.expect(Colon)
	p.parseType()
	p.expect(Semicolon)
	p.builder.Close(VarDecl, cp)
}

func (p *parser) parseNameList() {
	cp := p.builder.Open()
	p.expect(Ident)
	for p.at(Comma) {
		p.eat()
		p.expect(Ident)
	}
	p.builder.Close(NameList, cp)
}

func (p *parser) parseType() {
	if p.atSet(StandardTypeSet) {
		p.eat()
		return
	}
	if p.at(ArrayKw) {
		cp := p.builder.Open()
		p.eat()
		p.expect(LBracket)
		p.expect(IntLiteral)
		p.expect(RBracket)
		p.expect(OfKw)
		if p.atSet(StandardTypeSet) {
			p.eat()
		} else {
			p.expected = p.expected.Union(StandardTypeSet)
			p.fail()
		}
		p.builder.Close(ArrayType, cp)
		return
	}
	p.expected = p.expected.Union(TypeStartSet)
	p.fail()
}

func (p *parser) parseProcDecl() {
	cp := p.builder.Open()
	p.expect(ProcedureKw)
	p.expect(Ident)
	if p.at(LParen) {
		p.parseFormalParams()
	} else {
		p.builder.Empty(FormalParams)
	}
	p.expect(Semicolon)
	p.parseDeclPart()
	p.parseCompoundStmt()
	p.expect(Semicolon)
	p.builder.Close(ProcDecl, cp)
}

func (p *parser) parseFormalParams() {
	cp := p.builder.Open()
	p.expect(LParen)
	p.parseParamSection()
	for p.at(Semicolon) {
		p.eat()
		p.parseParamSection()
	}
	p.expect(RParen)
	p.builder.Close(FormalParams, cp)
}

func (p *parser) parseParamSection() {
	cp := p.builder.Open()
	p.parseNameList()
	p.expect(Colon)
	p.parseType()
	p.builder.Close(ParamSection, cp)
}

func (p *parser) parseCompoundStmt() {
	cp := p.builder.Open()
	p.expect(BeginKw)
	p.parseStatement()
	for p.at(Semicolon) {
		p.eat()
		p.parseStatement()
	}
	p.expect(EndKw)
	p.builder.Close(CompoundStmt, cp)
}

func (p *parser) parseStatement() {
	switch {
	case p.at(Ident):
		p.parseAssignStmt()
	case p.at(IfKw):
		p.parseIfStmt()
	case p.at(WhileKw):
		p.parseWhileStmt()
	case p.at(BreakKw):
		cp := p.builder.Open()
		p.eat()
		p.builder.Close(BreakStmt, cp)
	case p.at(CallKw):
		p.parseCallStmt()
	case p.at(ReturnKw):
		cp := p.builder.Open()
		p.eat()
		p.builder.Close(ReturnStmt, cp)
	case p.at(ReadKw), p.at(ReadlnKw):
		p.parseReadStmt()
	case p.at(WriteKw), p.at(WritelnKw):
		p.parseWriteStmt()
	case p.at(BeginKw):
		p.parseCompoundStmt()
	case p.atSet(SyntaxSetOf(Semicolon, EndKw)):
		// Empty statement: no tokens belong to it, just an Empty marker.
		p.builder.Empty(EmptyStmt)
	default:
		p.expected = p.expected.Union(StmtStartSet)
		p.unexpected()
	}
}

func (p *parser) parseAssignStmt() {
	cp := p.builder.Open()
	p.parseVariable()
	p.expect(Assign)
	p.parseExpr()
	p.builder.Close(AssignStmt, cp)
}

func (p *parser) parseVariable() {
	cp := p.builder.Open()
	p.expect(Ident)
	if p.at(LBracket) {
		p.eat()
		p.parseExpr()
		p.expect(RBracket)
		p.builder.Close(IndexedVar, cp)
		return
	}
	p.builder.Close(EntireVar, cp)
}

func (p *parser) parseIfStmt() {
	cp := p.builder.Open()
	p.expect(IfKw)
	p.parseExpr()
	p.expect(ThenKw)
	p.parseStatement()
	if p.at(ElseKw) {
		p.eat()
		p.parseStatement()
	} else {
		p.builder.Empty(EmptyStmt)
	}
	p.builder.Close(IfStmt, cp)
}

func (p *parser) parseWhileStmt() {
	cp := p.builder.Open()
	p.expect(WhileKw)
	p.parseExpr()
	p.expect(DoKw)
	p.parseStatement()
	p.builder.Close(WhileStmt, cp)
}

func (p *parser) parseCallStmt() {
	cp := p.builder.Open()
	p.expect(CallKw)
	p.expect(Ident)
	if p.at(LParen) {
		p.parseActualParams()
	} else {
		p.builder.Empty(ActualParams)
	}
	p.builder.Close(CallStmt, cp)
}

func (p *parser) parseActualParams() {
	cp := p.builder.Open()
	p.expect(LParen)
	p.parseExpr()
	for p.at(Comma) {
		p.eat()
		p.parseExpr()
	}
	p.expect(RParen)
	p.builder.Close(ActualParams, cp)
}

func (p *parser) parseReadStmt() {
	cp := p.builder.Open()
	p.eat() // ReadKw or ReadlnKw
	if p.at(LParen) {
		p.parseInputList()
	} else {
		p.builder.Empty(InputList)
	}
	p.builder.Close(ReadStmt, cp)
}

func (p *parser) parseInputList() {
	cp := p.builder.Open()
	p.expect(LParen)
	p.parseVariable()
	for p.at(Comma) {
		p.eat()
		p.parseVariable()
	}
	p.expect(RParen)
	p.builder.Close(InputList, cp)
}

func (p *parser) parseWriteStmt() {
	cp := p.builder.Open()
	p.eat() // WriteKw or WritelnKw
	if p.at(LParen) {
		p.parseOutputList()
	} else {
		p.builder.Empty(OutputList)
	}
	p.builder.Close(WriteStmt, cp)
}

func (p *parser) parseOutputList() {
	cp := p.builder.Open()
	p.expect(LParen)
	p.parseOutputValue()
	for p.at(Comma) {
		p.eat()
		p.parseOutputValue()
	}
	p.expect(RParen)
	p.builder.Close(OutputList, cp)
}

func (p *parser) parseOutputValue() {
	cp := p.builder.Open()
	p.parseExpr()
	if p.at(Colon) {
		p.eat()
		p.expect(IntLiteral)
	} else {
		p.builder.Empty(IntLiteral)
	}
	p.builder.Close(OutputValue, cp)
}

// --- Expressions ---
// relational -> additive(or) -> multiplicative(div,and) -> unary -> primary

func (p *parser) parseExpr() {
	p.parseBinaryLevel(RelationalOpSet, p.parseAdditive)
}

func (p *parser) parseAdditive() {
	p.parseBinaryLevel(AdditiveOpSet, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() {
	p.parseBinaryLevel(MultiplicativeOpSet, p.parseUnary)
}

// parseBinaryLevel parses a single left-associative precedence level:
// next (op next)*, left-folding each step into a BinaryExpr.
func (p *parser) parseBinaryLevel(ops SyntaxSet, next func()) {
	cp := p.builder.Open()
	next()
	for p.atSet(ops) {
		p.eat()
		next()
		p.builder.Close(BinaryExpr, cp)
	}
}

func (p *parser) parseUnary() {
	if p.atSet(UnaryOpSet) {
		cp := p.builder.Open()
		p.eat()
		p.parseUnary()
		p.builder.Close(UnaryExpr, cp)
		return
	}
	p.parsePrimary()
}

func (p *parser) parsePrimary() {
	switch {
	case p.at(IntLiteral):
		cp := p.builder.Open()
		p.eat()
		p.builder.Close(IntLiteralExpr, cp)
	case p.at(StringLiteral):
		cp := p.builder.Open()
		p.eat()
		p.builder.Close(StringLiteralExpr, cp)
	case p.at(TrueKw), p.at(FalseKw):
		cp := p.builder.Open()
		p.eat()
		p.builder.Close(BoolLiteralExpr, cp)
	case p.at(LParen):
		cp := p.builder.Open()
		p.eat()
		p.parseExpr()
		p.expect(RParen)
		p.builder.Close(ParenExpr, cp)
	case p.atSet(StandardTypeSet):
		cp := p.builder.Open()
		p.eat()
		p.expect(LParen)
		p.parseExpr()
		p.expect(RParen)
		p.builder.Close(CastExpr, cp)
	case p.at(Ident):
		p.parseVariable()
	default:
		p.expected = p.expected.Union(ExprStartSet)
		p.unexpected()
	}
}
