package index

import "github.com/you-not-fish/crosslang/internal/syntax"

// Indexer records the declarations of AST forests into a shared root
// module. Feed it one file at a time; duplicates are detected across all
// files fed into the same root.
type Indexer struct {
	syntax.BaseVisitor
	stack []*ModuleIndex
	err   error
}

// NewIndexer creates an indexer that adds to root.
func NewIndexer(root *ModuleIndex) *Indexer {
	return &Indexer{stack: []*ModuleIndex{root}}
}

// Index records every declaration of decls, in document order. It stops
// recording at the first duplicate and returns it.
func (ix *Indexer) Index(decls []syntax.Decl) error {
	syntax.WalkAll(ix, decls)
	return ix.err
}

// Err returns the first error encountered, if any.
func (ix *Indexer) Err() error { return ix.err }

func (ix *Indexer) current() *ModuleIndex {
	return ix.stack[len(ix.stack)-1]
}

func (ix *Indexer) fail(err error, n syntax.Node) {
	if ix.err != nil || err == nil {
		return
	}
	if e, ok := err.(*IndexError); ok && e.Offset < 0 {
		e.Offset = n.Offset()
	}
	ix.err = err
}

// VisitModuleDecl enters a new module scope.
func (ix *Indexer) VisitModuleDecl(n *syntax.ModuleDecl) {
	var m *ModuleIndex
	if n.Named() {
		m = NewNamedModule(n.Name)
	} else {
		m = NewModule()
	}
	if ix.err == nil {
		ix.fail(ix.current().AddModule(m), n)
	}
	// Pushed even on failure so that Leave stays balanced.
	ix.stack = append(ix.stack, m)
}

// VisitFieldDecl records a field of the current module.
func (ix *Indexer) VisitFieldDecl(n *syntax.FieldDecl) {
	if ix.err != nil {
		return
	}
	f := NewField(n.Modifiers.Has(syntax.Global), n.Name, n.Type)
	ix.fail(ix.current().AddField(f), n)
}

// VisitFuncDecl records a function of the current module.
func (ix *Indexer) VisitFuncDecl(n *syntax.FuncDecl) {
	if ix.err != nil {
		return
	}
	f := NewFunction(n.Modifiers.Has(syntax.Global), n.Name, n.Result, n.ParamTypes())
	ix.fail(ix.current().AddFunction(f), n)
}

// Leave leaves a module scope.
func (ix *Indexer) Leave(n syntax.Node) {
	if _, ok := n.(*syntax.ModuleDecl); ok {
		ix.stack = ix.stack[:len(ix.stack)-1]
	}
}

// IndexDecls records decls into root.
func IndexDecls(root *ModuleIndex, decls []syntax.Decl) error {
	return NewIndexer(root).Index(decls)
}
