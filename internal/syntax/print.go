package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

// FprintDecls writes every declaration of a forest to w.
func FprintDecls(w io.Writer, decls []Decl) {
	p := &printer{w: w}
	for _, d := range decls {
		p.print(d)
	}
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// section prints a labeled, indented child.
func (p *printer) section(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	// Declarations
	case *ModuleDecl:
		if n.Named() {
			p.printf("ModuleDecl @%d %s\n", n.offset, n.Name)
		} else {
			p.printf("ModuleDecl @%d\n", n.offset)
		}
		p.indent++
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *FieldDecl:
		p.printf("FieldDecl @%d\n", n.offset)
		p.indent++
		p.printf("Name: %s\n", n.Name)
		p.printf("Type: %s%s\n", modifierPrefix(n.Modifiers), n.Type)
		if n.Value != nil {
			p.section("Value", n.Value)
		}
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl @%d\n", n.offset)
		p.indent++
		p.printf("Name: %s\n", n.Name)
		p.printf("Result: %s%s\n", modifierPrefix(n.Modifiers), n.Result)
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s%s %s\n", modifierPrefix(f.Modifiers), f.Type, f.Name)
				if f.Value != nil {
					p.indent++
					p.section("Default", f.Value)
					p.indent--
				}
			}
			p.indent--
		}
		p.section("Body", n.Body)
		p.indent--

	// Statements
	case *BlockStmt:
		p.printf("BlockStmt @%d\n", n.offset)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *VarDeclStmt:
		p.printf("VarDeclStmt @%d %s%s %s\n", n.offset, modifierPrefix(n.Modifiers), n.Type, n.Name)
		if n.Value != nil {
			p.indent++
			p.print(n.Value)
			p.indent--
		}

	case *AssignStmt:
		p.printf("AssignStmt @%d %s\n", n.offset, n.Op)
		p.indent++
		p.section("LHS", n.LHS)
		p.section("RHS", n.RHS)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt @%d\n", n.offset)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Then", n.Then)
		if n.Else != nil {
			p.section("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt @%d\n", n.offset)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Body", n.Body)
		p.indent--

	case *DoWhileStmt:
		p.printf("DoWhileStmt @%d\n", n.offset)
		p.indent++
		p.section("Body", n.Body)
		p.section("Cond", n.Cond)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt @%d\n", n.offset)
		p.indent++
		if n.Init != nil {
			p.section("Init", n.Init)
		}
		if n.Cond != nil {
			p.section("Cond", n.Cond)
		}
		if n.Post != nil {
			p.section("Post", n.Post)
		}
		p.section("Body", n.Body)
		p.indent--

	case *ForeverStmt:
		p.printf("ForeverStmt @%d\n", n.offset)
		p.indent++
		p.print(n.Body)
		p.indent--

	case *RepeatStmt:
		p.printf("RepeatStmt @%d\n", n.offset)
		p.indent++
		p.section("Count", n.Count)
		p.section("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt @%d\n", n.offset)
		p.indent++
		p.print(n.Result)
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt @%d\n", n.offset)
		p.indent++
		p.print(n.X)
		p.indent--

	// Expressions
	case *Ident:
		p.printf("Ident @%d %s\n", n.offset, n.Name)

	case *ParenExpr:
		p.printf("ParenExpr @%d\n", n.offset)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr @%d %s\n", n.offset, n.Name)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *NamespaceExpr:
		p.printf("NamespaceExpr @%d %s\n", n.offset, n.Namespace)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Operation:
		p.printf("Operation @%d %s\n", n.offset, n.Op)
		p.indent++
		p.section("X", n.X)
		p.section("Y", n.Y)
		p.indent--

	case *UnaryLeftExpr:
		p.printf("UnaryLeftExpr @%d %s\n", n.offset, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *UnaryRightExpr:
		p.printf("UnaryRightExpr @%d %s\n", n.offset, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *BoolLit:
		p.printf("BoolLit @%d %t\n", n.offset, n.Value)

	case *IntLit:
		p.printf("IntLit @%d %d %s\n", n.offset, n.Value, n.Radix)

	case *FloatLit:
		p.printf("FloatLit @%d %g\n", n.offset, n.Value)

	case *DoubleLit:
		p.printf("DoubleLit @%d %g\n", n.offset, n.Value)

	case *StringLit:
		p.printf("StringLit @%d %q\n", n.offset, n.Value)

	case *CastExpr:
		p.printf("CastExpr @%d %s\n", n.offset, n.Type)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ArrayExpr:
		p.printf("ArrayExpr @%d\n", n.offset)
		p.indent++
		p.section("X", n.X)
		p.printf("Indices:\n")
		p.indent++
		for _, i := range n.Indices {
			p.print(i)
		}
		p.indent--
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// modifierPrefix renders a modifier set as a prefix, e.g. "global ".
func modifierPrefix(mods Modifiers) string {
	if mods.Has(Global) {
		return Global.String() + " "
	}
	return ""
}
