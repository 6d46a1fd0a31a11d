package syntax

// Visitor has one method per concrete node type. Embed BaseVisitor to
// implement only the methods of interest.
//
// A visit method may rewrite the children of the node it is given (through
// the node's fields or its slots). Walk fetches the children only after the
// visit method returned, so the recursion follows the rewritten structure.
type Visitor interface {
	// Expressions
	VisitIdent(*Ident)
	VisitParenExpr(*ParenExpr)
	VisitCallExpr(*CallExpr)
	VisitNamespaceExpr(*NamespaceExpr)
	VisitOperation(*Operation)
	VisitUnaryLeftExpr(*UnaryLeftExpr)
	VisitUnaryRightExpr(*UnaryRightExpr)
	VisitBoolLit(*BoolLit)
	VisitIntLit(*IntLit)
	VisitFloatLit(*FloatLit)
	VisitDoubleLit(*DoubleLit)
	VisitStringLit(*StringLit)
	VisitCastExpr(*CastExpr)
	VisitArrayExpr(*ArrayExpr)

	// Statements
	VisitBlockStmt(*BlockStmt)
	VisitVarDeclStmt(*VarDeclStmt)
	VisitAssignStmt(*AssignStmt)
	VisitIfStmt(*IfStmt)
	VisitWhileStmt(*WhileStmt)
	VisitDoWhileStmt(*DoWhileStmt)
	VisitForStmt(*ForStmt)
	VisitForeverStmt(*ForeverStmt)
	VisitRepeatStmt(*RepeatStmt)
	VisitReturnStmt(*ReturnStmt)
	VisitExprStmt(*ExprStmt)

	// Declarations
	VisitModuleDecl(*ModuleDecl)
	VisitFieldDecl(*FieldDecl)
	VisitFuncDecl(*FuncDecl)
}

// Leaver is implemented by visitors that need to know when the subtree of
// a node has been fully walked.
type Leaver interface {
	Leave(Node)
}

// BaseVisitor implements every Visitor method as a no-op.
type BaseVisitor struct{}

func (BaseVisitor) VisitIdent(*Ident)                   {}
func (BaseVisitor) VisitParenExpr(*ParenExpr)           {}
func (BaseVisitor) VisitCallExpr(*CallExpr)             {}
func (BaseVisitor) VisitNamespaceExpr(*NamespaceExpr)   {}
func (BaseVisitor) VisitOperation(*Operation)           {}
func (BaseVisitor) VisitUnaryLeftExpr(*UnaryLeftExpr)   {}
func (BaseVisitor) VisitUnaryRightExpr(*UnaryRightExpr) {}
func (BaseVisitor) VisitBoolLit(*BoolLit)               {}
func (BaseVisitor) VisitIntLit(*IntLit)                 {}
func (BaseVisitor) VisitFloatLit(*FloatLit)             {}
func (BaseVisitor) VisitDoubleLit(*DoubleLit)           {}
func (BaseVisitor) VisitStringLit(*StringLit)           {}
func (BaseVisitor) VisitCastExpr(*CastExpr)             {}
func (BaseVisitor) VisitArrayExpr(*ArrayExpr)           {}
func (BaseVisitor) VisitBlockStmt(*BlockStmt)           {}
func (BaseVisitor) VisitVarDeclStmt(*VarDeclStmt)       {}
func (BaseVisitor) VisitAssignStmt(*AssignStmt)         {}
func (BaseVisitor) VisitIfStmt(*IfStmt)                 {}
func (BaseVisitor) VisitWhileStmt(*WhileStmt)           {}
func (BaseVisitor) VisitDoWhileStmt(*DoWhileStmt)       {}
func (BaseVisitor) VisitForStmt(*ForStmt)               {}
func (BaseVisitor) VisitForeverStmt(*ForeverStmt)       {}
func (BaseVisitor) VisitRepeatStmt(*RepeatStmt)         {}
func (BaseVisitor) VisitReturnStmt(*ReturnStmt)         {}
func (BaseVisitor) VisitExprStmt(*ExprStmt)             {}
func (BaseVisitor) VisitModuleDecl(*ModuleDecl)         {}
func (BaseVisitor) VisitFieldDecl(*FieldDecl)           {}
func (BaseVisitor) VisitFuncDecl(*FuncDecl)             {}

// WalkExpr visits e and then, depth-first, its live child expressions.
func WalkExpr(v Visitor, e Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *Ident:
		v.VisitIdent(n)
	case *ParenExpr:
		v.VisitParenExpr(n)
	case *CallExpr:
		v.VisitCallExpr(n)
	case *NamespaceExpr:
		v.VisitNamespaceExpr(n)
	case *Operation:
		v.VisitOperation(n)
	case *UnaryLeftExpr:
		v.VisitUnaryLeftExpr(n)
	case *UnaryRightExpr:
		v.VisitUnaryRightExpr(n)
	case *BoolLit:
		v.VisitBoolLit(n)
	case *IntLit:
		v.VisitIntLit(n)
	case *FloatLit:
		v.VisitFloatLit(n)
	case *DoubleLit:
		v.VisitDoubleLit(n)
	case *StringLit:
		v.VisitStringLit(n)
	case *CastExpr:
		v.VisitCastExpr(n)
	case *ArrayExpr:
		v.VisitArrayExpr(n)
	}
	for _, s := range ExprSlots(e) {
		WalkExpr(v, *s)
	}
	leave(v, e)
}

// WalkStmt visits s, then its live child expressions, then its live child
// statements.
func WalkStmt(v Visitor, s Stmt) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *BlockStmt:
		v.VisitBlockStmt(n)
	case *VarDeclStmt:
		v.VisitVarDeclStmt(n)
	case *AssignStmt:
		v.VisitAssignStmt(n)
	case *IfStmt:
		v.VisitIfStmt(n)
	case *WhileStmt:
		v.VisitWhileStmt(n)
	case *DoWhileStmt:
		v.VisitDoWhileStmt(n)
	case *ForStmt:
		v.VisitForStmt(n)
	case *ForeverStmt:
		v.VisitForeverStmt(n)
	case *RepeatStmt:
		v.VisitRepeatStmt(n)
	case *ReturnStmt:
		v.VisitReturnStmt(n)
	case *ExprStmt:
		v.VisitExprStmt(n)
	}
	for _, slot := range ExprSlots(s) {
		WalkExpr(v, *slot)
	}
	for _, slot := range StmtSlots(s) {
		WalkStmt(v, *slot)
	}
	leave(v, s)
}

// WalkDecl visits d, then its live child expressions, statements and
// declarations, in that order.
func WalkDecl(v Visitor, d Decl) {
	if d == nil {
		return
	}
	switch n := d.(type) {
	case *ModuleDecl:
		v.VisitModuleDecl(n)
	case *FieldDecl:
		v.VisitFieldDecl(n)
	case *FuncDecl:
		v.VisitFuncDecl(n)
	}
	for _, slot := range ExprSlots(d) {
		WalkExpr(v, *slot)
	}
	for _, slot := range StmtSlots(d) {
		WalkStmt(v, *slot)
	}
	for _, slot := range DeclSlots(d) {
		WalkDecl(v, *slot)
	}
	leave(v, d)
}

// WalkAll walks every declaration of a forest in order.
func WalkAll(v Visitor, decls []Decl) {
	for _, d := range decls {
		WalkDecl(v, d)
	}
}

// Walk dispatches to WalkExpr, WalkStmt or WalkDecl.
func Walk(v Visitor, n Node) {
	switch n := n.(type) {
	case Expr:
		WalkExpr(v, n)
	case Stmt:
		WalkStmt(v, n)
	case Decl:
		WalkDecl(v, n)
	}
}

func leave(v Visitor, n Node) {
	if l, ok := v.(Leaver); ok {
		l.Leave(n)
	}
}

// Inspect traverses the subtree rooted at node in depth-first order and
// calls f for each node. If f returns false, the children of that node are
// not visited.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range Children(node) {
		Inspect(c, f)
	}
}
