package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError represents a syntax error. Offset is the byte offset of the
// offending token, or -1 when the input ended unexpectedly.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return "end of input: " + e.Msg
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Parser performs recursive-descent syntax analysis over a token slice.
//
// Ambiguous constructs are resolved by speculative parsing: the cursor is
// saved, an alternative is tried, and on failure the cursor is restored and
// the next alternative is tried. Grammar functions return an error instead
// of a node when they fail; no state other than the cursor is touched.
type Parser struct {
	tokens []Token
	next   int   // index of the next unconsumed token
	saved  []int // stack of saved cursors
}

// NewParser creates a Parser reading tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses tokens into a forest of declarations, links parent
// back-references and normalizes operator precedence.
func Parse(tokens []Token) ([]Decl, error) {
	decls, err := ParseRaw(tokens)
	if err != nil {
		return nil, err
	}
	Link(decls)
	NormalizePrecedence(decls)
	return decls, nil
}

// ParseRaw parses tokens into a forest of declarations without any
// post-parse fixups. Operator chains are right-nested regardless of
// precedence and parent back-references are unset.
func ParseRaw(tokens []Token) ([]Decl, error) {
	return NewParser(tokens).Parse()
}

// Parse parses a whole file: a declaration list followed by end of input.
func (p *Parser) Parse() ([]Decl, error) {
	decls, err := p.declList()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil {
		return nil, &ParseError{Offset: t.Offset, Msg: "Expected end of file"}
	}
	return decls, nil
}

// ----------------------------------------------------------------------------
// Token navigation

// peek returns the next token, or nil at end of input.
func (p *Parser) peek() *Token {
	if p.next >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.next]
}

// want consumes the next token if match accepts it. Otherwise it reports an
// unexpected token.
func (p *Parser) want(match func(*Token) bool) (*Token, error) {
	t := p.peek()
	if t == nil || !match(t) {
		return nil, p.unexpected(t, "Unexpected token")
	}
	p.next++
	return t, nil
}

// wantOp consumes the operator op.
func (p *Parser) wantOp(op string) (*Token, error) {
	return p.want(func(t *Token) bool { return isOp(t, op) })
}

// gotOp consumes the operator op if it is next and reports whether it did.
func (p *Parser) gotOp(op string) bool {
	if isOp(p.peek(), op) {
		p.next++
		return true
	}
	return false
}

// gotKeyword consumes the keyword kw if it is next and reports whether it did.
func (p *Parser) gotKeyword(kw string) bool {
	if isKeyword(p.peek(), kw) {
		p.next++
		return true
	}
	return false
}

func (p *Parser) wantIdent() (*Token, error) {
	return p.want(isIdent)
}

func (p *Parser) unexpected(t *Token, msg string) *ParseError {
	if t == nil {
		return &ParseError{Offset: -1, Msg: msg}
	}
	return &ParseError{Offset: t.Offset, Msg: msg}
}

// ----------------------------------------------------------------------------
// Speculation

func (p *Parser) save() {
	p.saved = append(p.saved, p.next)
}

func (p *Parser) commit() {
	p.saved = p.saved[:len(p.saved)-1]
}

func (p *Parser) rollback() {
	p.next = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
}

// try runs alt speculatively. On success the consumed tokens are kept; on
// failure the cursor is restored and the error is dropped.
func (p *Parser) try(alt func() error) bool {
	p.save()
	if err := alt(); err != nil {
		p.rollback()
		return false
	}
	p.commit()
	return true
}

// ----------------------------------------------------------------------------
// Token classes

func isIdent(t *Token) bool {
	return t != nil && t.Kind == Identifier
}

func isOp(t *Token, op string) bool {
	return t != nil && t.Kind == Operator && t.Text == op
}

func isKeyword(t *Token, kws ...string) bool {
	if !isIdent(t) {
		return false
	}
	for _, kw := range kws {
		if t.Text == kw {
			return true
		}
	}
	return false
}

func isOpIn(t *Token, set map[string]bool) bool {
	return t != nil && t.Kind == Operator && set[t.Text]
}

func isModifier(t *Token) bool {
	if !isIdent(t) {
		return false
	}
	_, ok := modifierNames[t.Text]
	return ok
}

func isDeclStart(t *Token) bool {
	return isKeyword(t, kwModule, kwModuleShort, kwField, kwFieldShort, kwFunc, kwFuncShort)
}

// castable reports whether t can start the operand of a cast. The prefix
// forms of + and - are excluded so that (a) - b stays a subtraction.
func castable(t *Token) bool {
	if isIdent(t) || isOp(t, "(") {
		return true
	}
	return isOpIn(t, leftUnaryOps) && t.Text != "+" && t.Text != "-"
}

// ----------------------------------------------------------------------------
// Declarations

// declList parses declarations while the next token starts one.
func (p *Parser) declList() ([]Decl, error) {
	var decls []Decl
	for isDeclStart(p.peek()) {
		d, err := p.decl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (p *Parser) decl() (Decl, error) {
	t := p.peek()
	switch {
	case isKeyword(t, kwModule, kwModuleShort):
		return p.moduleDecl()
	case isKeyword(t, kwField, kwFieldShort):
		return p.fieldDecl()
	case isKeyword(t, kwFunc, kwFuncShort):
		return p.funcDecl()
	}
	return nil, p.unexpected(t, "Unexpected token")
}

// moduleDecl parses: module [Name] { Decls... }
func (p *Parser) moduleDecl() (*ModuleDecl, error) {
	kw := p.peek()
	p.next++

	m := &ModuleDecl{}
	m.offset = kw.Offset
	if t := p.peek(); isIdent(t) {
		m.Name = t.Text
		p.next++
	}
	if _, err := p.wantOp("{"); err != nil {
		return nil, err
	}
	decls, err := p.declList()
	if err != nil {
		return nil, err
	}
	m.Decls = decls
	if _, err := p.wantOp("}"); err != nil {
		return nil, err
	}
	return m, nil
}

// fieldDecl parses: field Modifiers Type Name [= Value] [;]
func (p *Parser) fieldDecl() (*FieldDecl, error) {
	kw := p.peek()
	p.next++

	f, err := p.fieldShape()
	if err != nil {
		return nil, err
	}
	f.offset = kw.Offset
	p.gotOp(";")
	return f, nil
}

// fieldShape parses the common tail of fields, parameters and local
// variables: Modifiers Type Name [= Value]
func (p *Parser) fieldShape() (*FieldDecl, error) {
	f := &FieldDecl{}
	if t := p.peek(); t != nil {
		f.offset = t.Offset
	}
	f.Modifiers = p.modifiers()

	typ, err := p.typeRef()
	if err != nil {
		return nil, err
	}
	f.Type = typ

	name, err := p.wantIdent()
	if err != nil {
		return nil, err
	}
	f.Name = name.Text

	if p.gotOp("=") {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		f.Value = x
	}
	return f, nil
}

// funcDecl parses: function Modifiers Result Name ( Params... ) Body
func (p *Parser) funcDecl() (*FuncDecl, error) {
	kw := p.peek()
	p.next++

	fn := &FuncDecl{}
	fn.offset = kw.Offset
	fn.Modifiers = p.modifiers()

	result, err := p.typeRef()
	if err != nil {
		return nil, err
	}
	fn.Result = result

	name, err := p.wantIdent()
	if err != nil {
		return nil, err
	}
	fn.Name = name.Text

	if _, err := p.wantOp("("); err != nil {
		return nil, err
	}
	for !isOp(p.peek(), ")") {
		if len(fn.Params) > 0 {
			if _, err := p.wantOp(","); err != nil {
				return nil, err
			}
		}
		param, err := p.fieldShape()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
	}
	p.next++ // )

	body, err := p.stmt(false)
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// modifiers parses a possibly empty modifier list.
func (p *Parser) modifiers() Modifiers {
	var mods Modifiers
	for t := p.peek(); isModifier(t); t = p.peek() {
		if mods == nil {
			mods = make(Modifiers)
		}
		mods[modifierNames[t.Text]] = true
		p.next++
	}
	return mods
}

// typeRef parses: Name {:: Name} [< TypeRef {, TypeRef} >]
func (p *Parser) typeRef() (TypeRef, error) {
	var typ TypeRef
	name, err := p.wantIdent()
	if err != nil {
		return typ, err
	}
	typ.Name = name.Text

	for p.gotOp("::") {
		typ.Namespaces = append(typ.Namespaces, typ.Name)
		name, err := p.wantIdent()
		if err != nil {
			return typ, err
		}
		typ.Name = name.Text
	}

	if p.gotOp("<") {
		for !isOp(p.peek(), ">") {
			if len(typ.Args) > 0 {
				if _, err := p.wantOp(","); err != nil {
					return typ, err
				}
			}
			arg, err := p.typeRef()
			if err != nil {
				return typ, err
			}
			typ.Args = append(typ.Args, arg)
		}
		p.next++ // >
	}
	return typ, nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression. Binary operators continue to the right
// without regard to precedence: a OP1 b OP2 c is Operation(a, OP1,
// Operation(b, OP2, c)). NormalizePrecedence restores the proper shape.
func (p *Parser) expr() (Expr, error) {
	t := p.peek()
	switch {
	case isOp(t, "("):
		return p.parenOrCast()

	case isOpIn(t, leftUnaryOps):
		p.next++
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		u := &UnaryLeftExpr{Op: t.Text, X: x}
		u.offset = t.Offset
		return u, nil

	case t != nil && t.Kind == Number:
		p.next++
		x, err := parseNumber(t)
		if err != nil {
			return nil, err
		}
		return p.binaryTail(x)

	case isIdent(t):
		x, err := p.identPart()
		if err != nil {
			return nil, err
		}
		return p.binaryTail(x)

	case t != nil && t.Kind.IsString():
		p.next++
		s := &StringLit{Value: t.Text[1 : len(t.Text)-1]}
		s.offset = t.Offset
		return p.binaryTail(s)
	}
	return nil, p.unexpected(t, "Unexpected token - expected expression")
}

// binaryTail continues x with a binary operator, if one follows.
func (p *Parser) binaryTail(x Expr) (Expr, error) {
	t := p.peek()
	if !isOpIn(t, binaryOps) {
		return x, nil
	}
	p.next++
	y, err := p.expr()
	if err != nil {
		return nil, err
	}
	op := &Operation{X: x, Op: t.Text, Y: y}
	op.offset = x.Offset()
	return op, nil
}

// parenOrCast parses an expression starting with '('. The enclosed tokens
// are first tried as a type reference; the result is a cast only if that
// succeeded and the following token can start an operand.
func (p *Parser) parenOrCast() (Expr, error) {
	lparen := p.peek()
	p.next++
	start := p.next

	var typ TypeRef
	isType := p.try(func() error {
		t, err := p.typeRef()
		if err != nil {
			return err
		}
		if _, err := p.wantOp(")"); err != nil {
			return err
		}
		typ = t
		return nil
	})

	var inner Expr
	if !isType {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.wantOp(")"); err != nil {
			return nil, err
		}
		inner = x
	}

	if isType && castable(p.peek()) {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		c := &CastExpr{Type: typ, X: x}
		c.offset = lparen.Offset
		return c, nil
	}

	if isType {
		if typ.IsGeneric() {
			return nil, &ParseError{Offset: lparen.Offset, Msg: "Unexpected type reference in parenthesized expression"}
		}
		inner = p.typeRefExpr(typ, start)
	}

	paren := &ParenExpr{X: inner}
	paren.offset = lparen.Offset

	t := p.peek()
	switch {
	case isOpIn(t, binaryOps):
		return p.binaryTail(paren)
	case isOpIn(t, rightUnaryOps):
		p.next++
		u := &UnaryRightExpr{X: paren, Op: t.Text}
		u.offset = paren.offset
		return u, nil
	}
	return paren, nil
}

// typeRefExpr reinterprets a non-generic type reference read from the
// tokens at start as an identifier wrapped in its namespace chain.
// The tokens alternate name, ::, name, ...
func (p *Parser) typeRefExpr(typ TypeRef, start int) Expr {
	leaf := &Ident{Name: typ.Name}
	leaf.offset = p.tokens[start+2*len(typ.Namespaces)].Offset

	var x Expr = leaf
	for i := len(typ.Namespaces) - 1; i >= 0; i-- {
		ns := &NamespaceExpr{Namespace: typ.Namespaces[i], X: x}
		ns.offset = p.tokens[start+2*i].Offset
		x = ns
	}
	return x
}

// identPart parses an identifier-led operand: a call, a namespace chain or
// a plain identifier, followed by any number of index groups and at most
// one postfix operator. Binary operators are left to the caller.
func (p *Parser) identPart() (Expr, error) {
	name, err := p.wantIdent()
	if err != nil {
		return nil, err
	}

	var x Expr
	switch t := p.peek(); {
	case isOp(t, "("):
		p.next++
		args, err := p.exprList(")")
		if err != nil {
			return nil, err
		}
		call := &CallExpr{Name: name.Text, Args: args}
		call.offset = name.Offset
		x = call

	case isOp(t, "::"):
		p.next++
		operand, err := p.identPart()
		if err != nil {
			return nil, err
		}
		ns := &NamespaceExpr{Namespace: name.Text, X: operand}
		ns.offset = name.Offset
		x = ns

	case name.Text == kwTrue || name.Text == kwFalse:
		b := &BoolLit{Value: name.Text == kwTrue}
		b.offset = name.Offset
		x = b

	default:
		id := &Ident{Name: name.Text}
		id.offset = name.Offset
		x = id
	}

	for p.gotOp("[") {
		indices, err := p.exprList("]")
		if err != nil {
			return nil, err
		}
		a := &ArrayExpr{X: x, Indices: indices}
		a.offset = name.Offset
		x = a
	}

	if t := p.peek(); isOpIn(t, rightUnaryOps) {
		p.next++
		u := &UnaryRightExpr{X: x, Op: t.Text}
		u.offset = name.Offset
		x = u
	}
	return x, nil
}

// exprList parses a comma-separated expression list up to and including
// the closing operator.
func (p *Parser) exprList(close string) ([]Expr, error) {
	var list []Expr
	for !isOp(p.peek(), close) {
		if len(list) > 0 {
			if _, err := p.wantOp(","); err != nil {
				return nil, err
			}
		}
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		list = append(list, x)
	}
	p.next++ // close
	return list, nil
}

// parseNumber converts a number token into an integer or double literal.
func parseNumber(t *Token) (Expr, error) {
	text := t.Text
	radix := Decimal
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		radix, text = Hex, text[2:]
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		radix, text = Binary, text[2:]
	case len(text) > 1 && text[0] == '0' && isDigit(text[1]):
		radix, text = Octal, text[1:]
	}
	if text == "" {
		return nil, &ParseError{Offset: t.Offset, Msg: "Invalid number"}
	}

	// Integers contain neither a decimal point nor an exponent. For hex
	// literals e and E are digits.
	if !strings.Contains(text, ".") && (radix == Hex || !strings.ContainsAny(text, "eE")) {
		v, err := strconv.ParseInt(text, radix.Base(), 64)
		if err != nil {
			return nil, &ParseError{Offset: t.Offset, Msg: "Invalid number"}
		}
		lit := &IntLit{Value: v, Radix: radix}
		lit.offset = t.Offset
		return lit, nil
	}

	if radix != Decimal {
		return nil, &ParseError{Offset: t.Offset, Msg: "Not allowed non-integer values for non-decimal numbers"}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &ParseError{Offset: t.Offset, Msg: "Invalid number"}
	}
	lit := &DoubleLit{Value: v}
	lit.offset = t.Offset
	return lit, nil
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement. If allowSemi is set, a trailing ';' is consumed
// when present.
func (p *Parser) stmt(allowSemi bool) (Stmt, error) {
	s, err := p.stmtBody()
	if err != nil {
		return nil, err
	}
	if allowSemi {
		p.gotOp(";")
	}
	return s, nil
}

func (p *Parser) stmtBody() (Stmt, error) {
	t := p.peek()
	switch {
	case isOp(t, "{"):
		return p.blockStmt()
	case isKeyword(t, kwIf):
		return p.ifStmt()
	case isKeyword(t, kwWhile):
		return p.whileStmt()
	case isKeyword(t, kwDo):
		return p.doWhileStmt()
	case isKeyword(t, kwFor):
		return p.forStmt()
	case isKeyword(t, kwForever):
		return p.foreverStmt()
	case isKeyword(t, kwRepeat):
		return p.repeatStmt()
	case isKeyword(t, kwReturn):
		return p.returnStmt()
	}
	return p.simpleStmt()
}

// simpleStmt tries a variable declaration, then an assignment, and falls
// back to an expression statement.
func (p *Parser) simpleStmt() (Stmt, error) {
	var s Stmt
	if p.try(func() error {
		d, err := p.varDeclStmt()
		if err != nil {
			return err
		}
		s = d
		return nil
	}) {
		return s, nil
	}

	if p.try(func() error {
		a, err := p.assignStmt()
		if err != nil {
			return err
		}
		s = a
		return nil
	}) {
		return s, nil
	}

	first := p.peek()
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	es := &ExprStmt{X: x}
	es.offset = first.Offset
	return es, nil
}

func (p *Parser) blockStmt() (*BlockStmt, error) {
	lbrace := p.peek()
	p.next++

	b := &BlockStmt{}
	b.offset = lbrace.Offset
	for !isOp(p.peek(), "}") {
		s, err := p.stmt(true)
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	p.next++ // }
	return b, nil
}

func (p *Parser) varDeclStmt() (*VarDeclStmt, error) {
	f, err := p.fieldShape()
	if err != nil {
		return nil, err
	}
	d := &VarDeclStmt{Modifiers: f.Modifiers, Type: f.Type, Name: f.Name, Value: f.Value}
	d.offset = f.offset
	return d, nil
}

func (p *Parser) assignStmt() (*AssignStmt, error) {
	lhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	op, err := p.want(func(t *Token) bool { return isOpIn(t, assignOps) })
	if err != nil {
		return nil, err
	}
	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	a := &AssignStmt{LHS: lhs, Op: op.Text, RHS: rhs}
	a.offset = lhs.Offset()
	return a, nil
}

// cond parses a condition that may be enclosed in parentheses.
func (p *Parser) cond() (Expr, error) {
	paren := p.gotOp("(")
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if paren {
		if _, err := p.wantOp(")"); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// ifStmt parses: if Cond [then] Then [else Else]
func (p *Parser) ifStmt() (*IfStmt, error) {
	kw := p.peek()
	p.next++

	s := &IfStmt{}
	s.offset = kw.Offset

	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	s.Cond = cond

	p.gotKeyword(kwThen)
	then, err := p.stmt(false)
	if err != nil {
		return nil, err
	}
	s.Then = then

	if p.gotKeyword(kwElse) {
		els, err := p.stmt(false)
		if err != nil {
			return nil, err
		}
		s.Else = els
	}
	return s, nil
}

// whileStmt parses: while Cond Body
func (p *Parser) whileStmt() (*WhileStmt, error) {
	kw := p.peek()
	p.next++

	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	body, err := p.stmt(false)
	if err != nil {
		return nil, err
	}
	s := &WhileStmt{Cond: cond, Body: body}
	s.offset = kw.Offset
	return s, nil
}

// doWhileStmt parses: do Body while Cond
func (p *Parser) doWhileStmt() (*DoWhileStmt, error) {
	kw := p.peek()
	p.next++

	body, err := p.stmt(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.want(func(t *Token) bool { return isKeyword(t, kwWhile) }); err != nil {
		return nil, err
	}
	cond, err := p.cond()
	if err != nil {
		return nil, err
	}
	s := &DoWhileStmt{Body: body, Cond: cond}
	s.offset = kw.Offset
	return s, nil
}

// forStmt parses: for ( [Init] ; [Cond] ; [Post] ) Body
func (p *Parser) forStmt() (*ForStmt, error) {
	kw := p.peek()
	p.next++

	s := &ForStmt{}
	s.offset = kw.Offset
	if _, err := p.wantOp("("); err != nil {
		return nil, err
	}

	if !isOp(p.peek(), ";") {
		init, err := p.stmt(false)
		if err != nil {
			return nil, err
		}
		s.Init = init
	}
	if _, err := p.wantOp(";"); err != nil {
		return nil, err
	}

	if !isOp(p.peek(), ";") {
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		s.Cond = cond
	}
	if _, err := p.wantOp(";"); err != nil {
		return nil, err
	}

	if !isOp(p.peek(), ")") {
		post, err := p.stmt(false)
		if err != nil {
			return nil, err
		}
		s.Post = post
	}
	if _, err := p.wantOp(")"); err != nil {
		return nil, err
	}

	body, err := p.stmt(false)
	if err != nil {
		return nil, err
	}
	s.Body = body
	return s, nil
}

// foreverStmt parses: forever Body
func (p *Parser) foreverStmt() (*ForeverStmt, error) {
	kw := p.peek()
	p.next++

	body, err := p.stmt(false)
	if err != nil {
		return nil, err
	}
	s := &ForeverStmt{Body: body}
	s.offset = kw.Offset
	return s, nil
}

// repeatStmt parses: repeat Count Body
func (p *Parser) repeatStmt() (*RepeatStmt, error) {
	kw := p.peek()
	p.next++

	count, err := p.cond()
	if err != nil {
		return nil, err
	}
	body, err := p.stmt(false)
	if err != nil {
		return nil, err
	}
	s := &RepeatStmt{Count: count, Body: body}
	s.offset = kw.Offset
	return s, nil
}

// returnStmt parses: return Result
func (p *Parser) returnStmt() (*ReturnStmt, error) {
	kw := p.peek()
	p.next++

	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	s := &ReturnStmt{Result: x}
	s.offset = kw.Offset
	return s, nil
}
