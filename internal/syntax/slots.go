package syntax

// Child slots give generic code read/replace access to the direct children
// of a node without knowing its concrete type. A slot is the address of the
// field (or slice element) holding the child; assigning through it replaces
// the child in place. Absent optional children have no slot.
//
// Slots are computed on demand, so a caller that rewrites a node and then
// asks for its slots again sees the rewritten structure.

// ExprSlots returns the direct child-expression slots of n.
func ExprSlots(n Node) []*Expr {
	var slots []*Expr
	add := func(e *Expr) {
		if *e != nil {
			slots = append(slots, e)
		}
	}
	addList := func(list []Expr) {
		for i := range list {
			add(&list[i])
		}
	}

	switch n := n.(type) {
	// Expressions
	case *ParenExpr:
		add(&n.X)
	case *CallExpr:
		addList(n.Args)
	case *NamespaceExpr:
		add(&n.X)
	case *Operation:
		add(&n.X)
		add(&n.Y)
	case *UnaryLeftExpr:
		add(&n.X)
	case *UnaryRightExpr:
		add(&n.X)
	case *CastExpr:
		add(&n.X)
	case *ArrayExpr:
		add(&n.X)
		addList(n.Indices)

	// Statements
	case *VarDeclStmt:
		add(&n.Value)
	case *AssignStmt:
		add(&n.LHS)
		add(&n.RHS)
	case *IfStmt:
		add(&n.Cond)
	case *WhileStmt:
		add(&n.Cond)
	case *DoWhileStmt:
		add(&n.Cond)
	case *ForStmt:
		add(&n.Cond)
	case *RepeatStmt:
		add(&n.Count)
	case *ReturnStmt:
		add(&n.Result)
	case *ExprStmt:
		add(&n.X)

	// Declarations
	case *FieldDecl:
		add(&n.Value)
	case *FuncDecl:
		for _, p := range n.Params {
			add(&p.Value)
		}

	// Leaf expressions: Ident, BoolLit, IntLit, FloatLit, DoubleLit, StringLit
	}
	return slots
}

// StmtSlots returns the direct child-statement slots of n.
func StmtSlots(n Node) []*Stmt {
	var slots []*Stmt
	add := func(s *Stmt) {
		if *s != nil {
			slots = append(slots, s)
		}
	}

	switch n := n.(type) {
	case *BlockStmt:
		for i := range n.Stmts {
			add(&n.Stmts[i])
		}
	case *IfStmt:
		add(&n.Then)
		add(&n.Else)
	case *WhileStmt:
		add(&n.Body)
	case *DoWhileStmt:
		add(&n.Body)
	case *ForStmt:
		add(&n.Init)
		add(&n.Post)
		add(&n.Body)
	case *ForeverStmt:
		add(&n.Body)
	case *RepeatStmt:
		add(&n.Body)
	case *FuncDecl:
		add(&n.Body)
	}
	return slots
}

// DeclSlots returns the direct child-declaration slots of n. Only modules
// contain declarations; function parameters are not child declarations.
func DeclSlots(n Node) []*Decl {
	m, ok := n.(*ModuleDecl)
	if !ok {
		return nil
	}
	slots := make([]*Decl, 0, len(m.Decls))
	for i := range m.Decls {
		if m.Decls[i] != nil {
			slots = append(slots, &m.Decls[i])
		}
	}
	return slots
}

// Children returns the direct children of n in traversal order:
// expressions, then statements, then declarations.
func Children(n Node) []Node {
	var children []Node
	for _, s := range ExprSlots(n) {
		children = append(children, *s)
	}
	for _, s := range StmtSlots(n) {
		children = append(children, *s)
	}
	for _, s := range DeclSlots(n) {
		children = append(children, *s)
	}
	return children
}

// replaceExpr replaces old with new in the expression slots of container.
// It reports whether old was found.
func replaceExpr(container Node, old, new Expr) bool {
	for _, s := range ExprSlots(container) {
		if *s == old {
			*s = new
			return true
		}
	}
	return false
}
