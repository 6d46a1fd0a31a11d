package syntax

import "fmt"

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// All nodes implement the Node interface. Every composite node owns its
// children; the parent link of a node is a non-owning back-reference set by
// Link after parsing.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Offset() int        // byte offset of the first token of the node
	Parent() Node       // immediate syntactic container, nil for roots
	ParentExpr() Expr   // Parent if it is an expression
	ParentStmt() Stmt   // Parent if it is a statement
	ParentDecl() Decl   // Parent if it is a declaration
	setParent(p Node)   // restricted to this package
	aNode()             // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	Kind() ExprKind
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	Kind() StmtKind
	aStmt()
}

// Decl is the interface for all top-level and module-level declarations.
type Decl interface {
	Node
	Kind() DeclKind
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	offset int
	parent Node
}

func (n *node) Offset() int      { return n.offset }
func (n *node) Parent() Node     { return n.parent }
func (n *node) setParent(p Node) { n.parent = p }
func (n *node) aNode()           {}

func (n *node) ParentExpr() Expr {
	e, _ := n.parent.(Expr)
	return e
}

func (n *node) ParentStmt() Stmt {
	s, _ := n.parent.(Stmt)
	return s
}

func (n *node) ParentDecl() Decl {
	d, _ := n.parent.(Decl)
	return d
}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Discriminants

// ExprKind identifies the concrete type of an expression.
type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprParen
	ExprCall
	ExprNamespace
	ExprOperator
	ExprUnaryLeft
	ExprUnaryRight
	ExprBool
	ExprInt
	ExprFloat
	ExprDouble
	ExprString
	ExprCast
	ExprArray
)

var exprKindNames = [...]string{
	ExprIdent:      "Ident",
	ExprParen:      "Paren",
	ExprCall:       "Call",
	ExprNamespace:  "Namespace",
	ExprOperator:   "Operator",
	ExprUnaryLeft:  "UnaryLeft",
	ExprUnaryRight: "UnaryRight",
	ExprBool:       "Bool",
	ExprInt:        "Int",
	ExprFloat:      "Float",
	ExprDouble:     "Double",
	ExprString:     "String",
	ExprCast:       "Cast",
	ExprArray:      "Array",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return fmt.Sprintf("ExprKind(%d)", k)
}

// StmtKind identifies the concrete type of a statement.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVarDecl
	StmtAssign
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtForever
	StmtRepeat
	StmtReturn
	StmtExpr
)

var stmtKindNames = [...]string{
	StmtBlock:   "Block",
	StmtVarDecl: "VarDecl",
	StmtAssign:  "Assign",
	StmtIf:      "If",
	StmtWhile:   "While",
	StmtDoWhile: "DoWhile",
	StmtFor:     "For",
	StmtForever: "Forever",
	StmtRepeat:  "Repeat",
	StmtReturn:  "Return",
	StmtExpr:    "Expr",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return fmt.Sprintf("StmtKind(%d)", k)
}

// DeclKind identifies the concrete type of a declaration.
type DeclKind uint8

const (
	DeclModule DeclKind = iota
	DeclField
	DeclFunc
)

var declKindNames = [...]string{
	DeclModule: "Module",
	DeclField:  "Field",
	DeclFunc:   "Func",
}

func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return fmt.Sprintf("DeclKind(%d)", k)
}

// Radix is the numeral base an integer literal was written in.
type Radix uint8

const (
	Binary Radix = iota
	Octal
	Decimal
	Hex
)

var radixNames = [...]string{
	Binary:  "bin",
	Octal:   "oct",
	Decimal: "dec",
	Hex:     "hex",
}

func (r Radix) String() string {
	if int(r) < len(radixNames) {
		return radixNames[r]
	}
	return fmt.Sprintf("Radix(%d)", r)
}

// Base returns the numeric base of r.
func (r Radix) Base() int {
	switch r {
	case Binary:
		return 2
	case Octal:
		return 8
	case Hex:
		return 16
	}
	return 10
}

// Modifier is a declaration qualifier.
type Modifier uint8

const (
	Global Modifier = iota
)

// modifierNames maps source spellings to modifiers.
var modifierNames = map[string]Modifier{
	"global": Global,
}

func (m Modifier) String() string {
	for name, mod := range modifierNames {
		if mod == m {
			return name
		}
	}
	return fmt.Sprintf("Modifier(%d)", m)
}

// LookupModifier returns the modifier spelled name.
func LookupModifier(name string) (Modifier, bool) {
	m, ok := modifierNames[name]
	return m, ok
}

// Modifiers is a set of modifiers. The zero value is an empty set.
type Modifiers map[Modifier]bool

// Has reports whether m contains mod.
func (m Modifiers) Has(mod Modifier) bool {
	return m[mod]
}

// ----------------------------------------------------------------------------
// Expressions

// Ident represents an identifier.
type Ident struct {
	expr
	Name string
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr // inner expression
}

// CallExpr represents a function call: Name(Args...)
type CallExpr struct {
	expr
	Name string // called function
	Args []Expr // argument list
}

// NamespaceExpr represents a namespace qualification: Namespace::X
// Chains nest to the right: a::b::c is Namespace(a, Namespace(b, c)).
type NamespaceExpr struct {
	expr
	Namespace string // qualifying segment
	X         Expr   // qualified operand
}

// Operation represents a binary operation: X Op Y
type Operation struct {
	expr
	X  Expr   // left operand
	Op string // operator symbol
	Y  Expr   // right operand
}

// UnaryLeftExpr represents a prefix operation: Op X
type UnaryLeftExpr struct {
	expr
	Op string
	X  Expr
}

// UnaryRightExpr represents a postfix operation: X Op
type UnaryRightExpr struct {
	expr
	X  Expr
	Op string
}

// BoolLit represents true or false.
type BoolLit struct {
	expr
	Value bool
}

// IntLit represents an integer literal.
type IntLit struct {
	expr
	Value int64
	Radix Radix // base the literal was written in
}

// FloatLit represents a single precision constant. The parser never
// produces it; it exists for later stages that narrow DoubleLit values.
type FloatLit struct {
	expr
	Value float32
}

// DoubleLit represents a non-integral numeric literal.
type DoubleLit struct {
	expr
	Value float64
}

// StringLit represents a quoted string. Value is the source text between
// the quotes; escape sequences are kept verbatim.
type StringLit struct {
	expr
	Value string
}

// CastExpr represents a cast: (Type) X
type CastExpr struct {
	expr
	Type TypeRef // target type
	X    Expr    // operand
}

// ArrayExpr represents an index expression: X[Indices...]
type ArrayExpr struct {
	expr
	X       Expr   // indexed expression
	Indices []Expr // index list
}

func (*Ident) Kind() ExprKind          { return ExprIdent }
func (*ParenExpr) Kind() ExprKind      { return ExprParen }
func (*CallExpr) Kind() ExprKind       { return ExprCall }
func (*NamespaceExpr) Kind() ExprKind  { return ExprNamespace }
func (*Operation) Kind() ExprKind      { return ExprOperator }
func (*UnaryLeftExpr) Kind() ExprKind  { return ExprUnaryLeft }
func (*UnaryRightExpr) Kind() ExprKind { return ExprUnaryRight }
func (*BoolLit) Kind() ExprKind        { return ExprBool }
func (*IntLit) Kind() ExprKind         { return ExprInt }
func (*FloatLit) Kind() ExprKind       { return ExprFloat }
func (*DoubleLit) Kind() ExprKind      { return ExprDouble }
func (*StringLit) Kind() ExprKind      { return ExprString }
func (*CastExpr) Kind() ExprKind       { return ExprCast }
func (*ArrayExpr) Kind() ExprKind      { return ExprArray }

// ----------------------------------------------------------------------------
// Statements

// BlockStmt represents a block statement: { Stmts... }
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// VarDeclStmt represents a local variable declaration: Modifiers Type Name [= Value]
type VarDeclStmt struct {
	stmt
	Modifiers Modifiers
	Type      TypeRef
	Name      string
	Value     Expr // initializer (nil if none)
}

// AssignStmt represents an assignment: LHS Op RHS
type AssignStmt struct {
	stmt
	LHS Expr
	Op  string // =, +=, <<=, ...
	RHS Expr
}

// IfStmt represents: if Cond [then] Then [else Else]
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// WhileStmt represents: while Cond Body
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// DoWhileStmt represents: do Body while Cond
type DoWhileStmt struct {
	stmt
	Body Stmt
	Cond Expr
}

// ForStmt represents: for (Init; Cond; Post) Body
type ForStmt struct {
	stmt
	Init Stmt // nil if absent
	Cond Expr // nil if absent
	Post Stmt // nil if absent
	Body Stmt
}

// ForeverStmt represents: forever Body
type ForeverStmt struct {
	stmt
	Body Stmt
}

// RepeatStmt represents: repeat Count Body
type RepeatStmt struct {
	stmt
	Count Expr
	Body  Stmt
}

// ReturnStmt represents: return Result
type ReturnStmt struct {
	stmt
	Result Expr
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X Expr
}

func (*BlockStmt) Kind() StmtKind   { return StmtBlock }
func (*VarDeclStmt) Kind() StmtKind { return StmtVarDecl }
func (*AssignStmt) Kind() StmtKind  { return StmtAssign }
func (*IfStmt) Kind() StmtKind      { return StmtIf }
func (*WhileStmt) Kind() StmtKind   { return StmtWhile }
func (*DoWhileStmt) Kind() StmtKind { return StmtDoWhile }
func (*ForStmt) Kind() StmtKind     { return StmtFor }
func (*ForeverStmt) Kind() StmtKind { return StmtForever }
func (*RepeatStmt) Kind() StmtKind  { return StmtRepeat }
func (*ReturnStmt) Kind() StmtKind  { return StmtReturn }
func (*ExprStmt) Kind() StmtKind    { return StmtExpr }

// ----------------------------------------------------------------------------
// Declarations

// ModuleDecl represents: module [Name] { Decls... }
// An empty Name denotes an anonymous module.
type ModuleDecl struct {
	decl
	Name  string
	Decls []Decl
}

// Named reports whether the module carries a name.
func (m *ModuleDecl) Named() bool { return m.Name != "" }

// FieldDecl represents a field, or a function parameter:
// field Modifiers Type Name [= Value]
type FieldDecl struct {
	decl
	Modifiers Modifiers
	Type      TypeRef
	Name      string
	Value     Expr // initializer or parameter default (nil if none)
}

// FuncDecl represents: function Modifiers Result Name(Params...) Body
type FuncDecl struct {
	decl
	Modifiers Modifiers
	Result    TypeRef
	Name      string
	Params    []*FieldDecl
	Body      Stmt
}

// ParamTypes returns the declared parameter types in order.
func (f *FuncDecl) ParamTypes() []TypeRef {
	types := make([]TypeRef, len(f.Params))
	for i, p := range f.Params {
		types[i] = p.Type
	}
	return types
}

func (*ModuleDecl) Kind() DeclKind { return DeclModule }
func (*FieldDecl) Kind() DeclKind  { return DeclField }
func (*FuncDecl) Kind() DeclKind   { return DeclFunc }
