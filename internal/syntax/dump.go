package syntax

import (
	"strconv"
	"strings"
)

// Dump returns a compact one-line structural rendering of n, e.g.
//
//	op(op(int(1) * int(2)) - op(int(3) / int(4)))
//
// Dumps are meant for tests and debugging; they are stable but not
// re-parseable.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

func dump(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("nil")

	// Expressions
	case *Ident:
		wrap(b, "id", n.Name)
	case *ParenExpr:
		b.WriteString("par(")
		dump(b, n.X)
		b.WriteByte(')')
	case *CallExpr:
		b.WriteString("call(")
		b.WriteString(n.Name)
		for _, a := range n.Args {
			b.WriteString(", ")
			dump(b, a)
		}
		b.WriteByte(')')
	case *NamespaceExpr:
		b.WriteString("ns(")
		b.WriteString(n.Namespace)
		b.WriteString("::")
		dump(b, n.X)
		b.WriteByte(')')
	case *Operation:
		b.WriteString("op(")
		dump(b, n.X)
		b.WriteString(" " + n.Op + " ")
		dump(b, n.Y)
		b.WriteByte(')')
	case *UnaryLeftExpr:
		b.WriteString("pre(" + n.Op + " ")
		dump(b, n.X)
		b.WriteByte(')')
	case *UnaryRightExpr:
		b.WriteString("post(")
		dump(b, n.X)
		b.WriteString(" " + n.Op + ")")
	case *BoolLit:
		wrap(b, "bool", strconv.FormatBool(n.Value))
	case *IntLit:
		v := strconv.FormatInt(n.Value, 10)
		if n.Radix != Decimal {
			v += ", " + n.Radix.String()
		}
		wrap(b, "int", v)
	case *FloatLit:
		wrap(b, "float", strconv.FormatFloat(float64(n.Value), 'g', -1, 32))
	case *DoubleLit:
		wrap(b, "double", strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLit:
		wrap(b, "str", strconv.Quote(n.Value))
	case *CastExpr:
		b.WriteString("cast(" + n.Type.String() + ", ")
		dump(b, n.X)
		b.WriteByte(')')
	case *ArrayExpr:
		b.WriteString("arr(")
		dump(b, n.X)
		b.WriteByte('[')
		for i, x := range n.Indices {
			if i > 0 {
				b.WriteString(", ")
			}
			dump(b, x)
		}
		b.WriteString("])")

	// Statements
	case *BlockStmt:
		b.WriteString("block(")
		for i, s := range n.Stmts {
			if i > 0 {
				b.WriteString("; ")
			}
			dump(b, s)
		}
		b.WriteByte(')')
	case *VarDeclStmt:
		b.WriteString("var(")
		dumpField(b, n.Modifiers, n.Type, n.Name, n.Value)
		b.WriteByte(')')
	case *AssignStmt:
		b.WriteString("assign(")
		dump(b, n.LHS)
		b.WriteString(" " + n.Op + " ")
		dump(b, n.RHS)
		b.WriteByte(')')
	case *IfStmt:
		b.WriteString("if(")
		dumpList(b, n.Cond, n.Then)
		if n.Else != nil {
			b.WriteString(", ")
			dump(b, n.Else)
		}
		b.WriteByte(')')
	case *WhileStmt:
		b.WriteString("while(")
		dumpList(b, n.Cond, n.Body)
		b.WriteByte(')')
	case *DoWhileStmt:
		b.WriteString("do(")
		dumpList(b, n.Body, n.Cond)
		b.WriteByte(')')
	case *ForStmt:
		b.WriteString("for(")
		dumpOptional(b, n.Init)
		b.WriteString("; ")
		dumpOptional(b, n.Cond)
		b.WriteString("; ")
		dumpOptional(b, n.Post)
		b.WriteString("; ")
		dump(b, n.Body)
		b.WriteByte(')')
	case *ForeverStmt:
		b.WriteString("forever(")
		dump(b, n.Body)
		b.WriteByte(')')
	case *RepeatStmt:
		b.WriteString("repeat(")
		dumpList(b, n.Count, n.Body)
		b.WriteByte(')')
	case *ReturnStmt:
		b.WriteString("return(")
		dump(b, n.Result)
		b.WriteByte(')')
	case *ExprStmt:
		b.WriteString("expr(")
		dump(b, n.X)
		b.WriteByte(')')

	// Declarations
	case *ModuleDecl:
		b.WriteString("module(")
		if n.Named() {
			b.WriteString(n.Name + ": ")
		}
		for i, d := range n.Decls {
			if i > 0 {
				b.WriteString("; ")
			}
			dump(b, d)
		}
		b.WriteByte(')')
	case *FieldDecl:
		b.WriteString("field(")
		dumpField(b, n.Modifiers, n.Type, n.Name, n.Value)
		b.WriteByte(')')
	case *FuncDecl:
		b.WriteString("func(")
		b.WriteString(modifierPrefix(n.Modifiers) + n.Result.String() + " " + n.Name + "(")
		for i, p := range n.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			dumpField(b, p.Modifiers, p.Type, p.Name, p.Value)
		}
		b.WriteString(") ")
		dump(b, n.Body)
		b.WriteByte(')')
	}
}

func wrap(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(value)
	b.WriteByte(')')
}

func dumpList(b *strings.Builder, nodes ...Node) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		dump(b, n)
	}
}

// dumpOptional writes nothing for an absent child.
func dumpOptional(b *strings.Builder, n Node) {
	if n != nil {
		dump(b, n)
	}
}

func dumpField(b *strings.Builder, mods Modifiers, typ TypeRef, name string, value Expr) {
	b.WriteString(modifierPrefix(mods) + typ.String() + " " + name)
	if value != nil {
		b.WriteString(" = ")
		dump(b, value)
	}
}
