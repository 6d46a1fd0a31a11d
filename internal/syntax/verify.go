package syntax

import (
	"fmt"
	"strings"
)

// Verify checks the structural integrity of a linked, normalized forest.
// It returns an error describing all violations found, or nil if valid.
//
// Checked properties:
//   - every root has no parent and every child's parent is its container
//   - an operator that is the right operand of an operator binds strictly
//     tighter than its parent; a left operand binds no looser
func Verify(decls []Decl) error {
	return verify(decls, true)
}

// VerifyLinks checks only the parent back-references of a forest. It
// accepts forests that were linked but not yet normalized.
func VerifyLinks(decls []Decl) error {
	return verify(decls, false)
}

func verify(decls []Decl, checkLevels bool) error {
	var errs []string

	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	for i, d := range decls {
		if d == nil {
			add("decl %d: nil", i)
			continue
		}
		if d.Parent() != nil {
			add("decl %d (%s): root has parent %s", i, d.Kind(), nodeLabel(d.Parent()))
		}
	}

	for _, d := range decls {
		Inspect(d, func(n Node) bool {
			for _, c := range Children(n) {
				if c.Parent() != n {
					add("offset %d: %s has parent %s, want %s",
						c.Offset(), nodeLabel(c), nodeLabel(c.Parent()), nodeLabel(n))
				}
			}

			op, ok := n.(*Operation)
			if !ok || !checkLevels {
				return true
			}
			for _, side := range []struct {
				name   string
				x      Expr
				strict bool
			}{{"left", op.X, false}, {"right", op.Y, true}} {
				child, ok := side.x.(*Operation)
				if !ok {
					continue
				}
				pl, cl := Level(op.Op), Level(child.Op)
				if pl < cl || side.strict && pl == cl {
					add("offset %d: %s operand %q (level %d) under %q (level %d)",
						child.Offset(), side.name, child.Op, cl, op.Op, pl)
				}
			}
			return true
		})
	}

	return combineErrors(errs)
}

func nodeLabel(n Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case Expr:
		return n.Kind().String() + " expr"
	case Stmt:
		return n.Kind().String() + " stmt"
	case Decl:
		return n.Kind().String() + " decl"
	}
	return "?"
}

// combineErrors creates an error from a list of error strings, or returns nil.
func combineErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("AST verification failed:\n  %s", strings.Join(errs, "\n  "))
}
