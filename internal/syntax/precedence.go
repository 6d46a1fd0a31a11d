package syntax

// precedence lists the binary operators from the tightest binding level to
// the loosest. Bitwise operators bind loosest of all.
var precedence = [...][]string{
	{"*", "/", "%"},
	{"+", "-"},
	{"==", "!=", "<", "<=", ">", ">="},
	{"&&", "||", "^^"},
	{"&", "|", "^", ">>", "<<"},
}

var levels = func() map[string]int {
	m := make(map[string]int)
	for level, ops := range precedence {
		for _, op := range ops {
			m[op] = level
		}
	}
	return m
}()

// Level returns the precedence level of a binary operator. Lower levels
// bind tighter. Unknown operators sort after every known level.
func Level(op string) int {
	if l, ok := levels[op]; ok {
		return l
	}
	return len(precedence)
}

// NormalizePrecedence rewrites the right-nested operator chains produced
// by the parser into precedence-correct, left-associative trees.
// The forest must be linked.
//
// Operators are visited top-down. An operator N that is the right operand
// of an operator P binding the same or tighter is rotated above P:
//
//	   P              N
//	  / \            / \
//	 a   N    =>    P   c
//	    / \        / \
//	   b   c      a   b
//
// and keeps rotating while its new parent qualifies. No nodes are created;
// only child links and back-references change.
func NormalizePrecedence(decls []Decl) {
	f := &precedenceFixer{visited: make(map[*Operation]bool)}
	WalkAll(f, decls)
}

type precedenceFixer struct {
	BaseVisitor
	visited map[*Operation]bool
}

func (f *precedenceFixer) VisitOperation(n *Operation) {
	if f.visited[n] {
		return
	}
	f.visited[n] = true
	for {
		p, ok := n.Parent().(*Operation)
		if !ok || p.Y != Expr(n) || Level(p.Op) > Level(n.Op) {
			return
		}
		rotate(p, n)
	}
}

// rotate moves n, the right operand of p, into p's position and makes p
// the left operand of n. n's former left operand becomes p's right operand.
func rotate(p, n *Operation) {
	container := p.Parent()

	moved := n.X
	p.Y = moved
	moved.setParent(p)

	n.X = p
	p.setParent(n)

	n.setParent(container)
	if container != nil {
		replaceExpr(container, p, n)
	}
}
