package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of a declaration forest to w.
func FprintJSON(w io.Writer, decls []Decl) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mapSlice(decls, func(d Decl) interface{} { return toJSON(d) }))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	m := map[string]interface{}{"offset": node.Offset()}
	switch n := node.(type) {
	// Declarations
	case *ModuleDecl:
		m["type"] = "ModuleDecl"
		if n.Named() {
			m["name"] = n.Name
		}
		m["decls"] = mapSlice(n.Decls, func(d Decl) interface{} { return toJSON(d) })

	case *FieldDecl:
		m["type"] = "FieldDecl"
		fieldJSON(m, n)

	case *FuncDecl:
		m["type"] = "FuncDecl"
		m["name"] = n.Name
		m["result"] = typeJSON(n.Result)
		if n.Modifiers.Has(Global) {
			m["global"] = true
		}
		m["params"] = mapSlice(n.Params, func(f *FieldDecl) interface{} {
			p := map[string]interface{}{"offset": f.offset}
			fieldJSON(p, f)
			return p
		})
		m["body"] = toJSON(n.Body)

	// Statements
	case *BlockStmt:
		m["type"] = "BlockStmt"
		m["stmts"] = mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) })

	case *VarDeclStmt:
		m["type"] = "VarDeclStmt"
		m["name"] = n.Name
		m["vartype"] = typeJSON(n.Type)
		if n.Modifiers.Has(Global) {
			m["global"] = true
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}

	case *AssignStmt:
		m["type"] = "AssignStmt"
		m["op"] = n.Op
		m["lhs"] = toJSON(n.LHS)
		m["rhs"] = toJSON(n.RHS)

	case *IfStmt:
		m["type"] = "IfStmt"
		m["cond"] = toJSON(n.Cond)
		m["then"] = toJSON(n.Then)
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}

	case *WhileStmt:
		m["type"] = "WhileStmt"
		m["cond"] = toJSON(n.Cond)
		m["body"] = toJSON(n.Body)

	case *DoWhileStmt:
		m["type"] = "DoWhileStmt"
		m["body"] = toJSON(n.Body)
		m["cond"] = toJSON(n.Cond)

	case *ForStmt:
		m["type"] = "ForStmt"
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		if n.Cond != nil {
			m["cond"] = toJSON(n.Cond)
		}
		if n.Post != nil {
			m["post"] = toJSON(n.Post)
		}
		m["body"] = toJSON(n.Body)

	case *ForeverStmt:
		m["type"] = "ForeverStmt"
		m["body"] = toJSON(n.Body)

	case *RepeatStmt:
		m["type"] = "RepeatStmt"
		m["count"] = toJSON(n.Count)
		m["body"] = toJSON(n.Body)

	case *ReturnStmt:
		m["type"] = "ReturnStmt"
		m["result"] = toJSON(n.Result)

	case *ExprStmt:
		m["type"] = "ExprStmt"
		m["x"] = toJSON(n.X)

	// Expressions
	case *Ident:
		m["type"] = "Ident"
		m["name"] = n.Name

	case *ParenExpr:
		m["type"] = "ParenExpr"
		m["x"] = toJSON(n.X)

	case *CallExpr:
		m["type"] = "CallExpr"
		m["name"] = n.Name
		m["args"] = mapSlice(n.Args, func(e Expr) interface{} { return toJSON(e) })

	case *NamespaceExpr:
		m["type"] = "NamespaceExpr"
		m["namespace"] = n.Namespace
		m["x"] = toJSON(n.X)

	case *Operation:
		m["type"] = "Operation"
		m["op"] = n.Op
		m["x"] = toJSON(n.X)
		m["y"] = toJSON(n.Y)

	case *UnaryLeftExpr:
		m["type"] = "UnaryLeftExpr"
		m["op"] = n.Op
		m["x"] = toJSON(n.X)

	case *UnaryRightExpr:
		m["type"] = "UnaryRightExpr"
		m["op"] = n.Op
		m["x"] = toJSON(n.X)

	case *BoolLit:
		m["type"] = "BoolLit"
		m["value"] = n.Value

	case *IntLit:
		m["type"] = "IntLit"
		m["value"] = n.Value
		m["radix"] = n.Radix.String()

	case *FloatLit:
		m["type"] = "FloatLit"
		m["value"] = n.Value

	case *DoubleLit:
		m["type"] = "DoubleLit"
		m["value"] = n.Value

	case *StringLit:
		m["type"] = "StringLit"
		m["value"] = n.Value

	case *CastExpr:
		m["type"] = "CastExpr"
		m["casttype"] = typeJSON(n.Type)
		m["x"] = toJSON(n.X)

	case *ArrayExpr:
		m["type"] = "ArrayExpr"
		m["x"] = toJSON(n.X)
		m["indices"] = mapSlice(n.Indices, func(e Expr) interface{} { return toJSON(e) })
	}
	return m
}

func fieldJSON(m map[string]interface{}, f *FieldDecl) {
	m["name"] = f.Name
	m["fieldtype"] = typeJSON(f.Type)
	if f.Modifiers.Has(Global) {
		m["global"] = true
	}
	if f.Value != nil {
		m["value"] = toJSON(f.Value)
	}
}

func typeJSON(t TypeRef) interface{} {
	m := map[string]interface{}{"name": t.Name}
	if len(t.Namespaces) > 0 {
		m["namespaces"] = t.Namespaces
	}
	if len(t.Args) > 0 {
		m["args"] = mapSlice(t.Args, typeJSON)
	}
	return m
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
