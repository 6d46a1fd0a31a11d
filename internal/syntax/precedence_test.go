package syntax

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		op   string
		want int
	}{
		{"*", 0}, {"/", 0}, {"%", 0},
		{"+", 1}, {"-", 1},
		{"==", 2}, {"!=", 2}, {"<", 2}, {"<=", 2}, {">", 2}, {">=", 2},
		{"&&", 3}, {"||", 3}, {"^^", 3},
		{"&", 4}, {"|", 4}, {"^", 4}, {">>", 4}, {"<<", 4},
		{"=", 5},
	}

	for _, tt := range tests {
		if got := Level(tt.op); got != tt.want {
			t.Errorf("Level(%q) = %d, want %d", tt.op, got, tt.want)
		}
	}
}

func TestEveryBinaryOpHasLevel(t *testing.T) {
	for op := range binaryOps {
		if Level(op) >= len(precedence) {
			t.Errorf("binary operator %q has no precedence level", op)
		}
	}
}

// expectedShape builds the dump of the precedence-correct, left-associative
// tree for operands joined by ops: the root is the last operator of the
// loosest level present.
func expectedShape(operands, ops []string) string {
	if len(ops) == 0 {
		return operands[0]
	}
	root := 0
	for i, op := range ops {
		if Level(op) >= Level(ops[root]) {
			root = i
		}
	}
	left := expectedShape(operands[:root+1], ops[:root])
	right := expectedShape(operands[root+1:], ops[root+1:])
	return "op(" + left + " " + ops[root] + " " + right + ")"
}

// randomChain returns the source of a random flat binary chain mixing all
// precedence levels, and the dump expected after normalization.
func randomChain(r *rand.Rand) (src, want string) {
	var allOps []string
	for _, level := range precedence {
		allOps = append(allOps, level...)
	}

	n := 1 + r.Intn(10)
	var (
		text     []string
		operands []string
		ops      []string
	)
	for i := 0; i <= n; i++ {
		if i > 0 {
			op := allOps[r.Intn(len(allOps))]
			ops = append(ops, op)
			text = append(text, op)
		}
		if r.Intn(2) == 0 {
			name := string(rune('a' + r.Intn(5)))
			text = append(text, name)
			operands = append(operands, "id("+name+")")
		} else {
			v := r.Intn(100)
			text = append(text, fmt.Sprint(v))
			operands = append(operands, fmt.Sprintf("int(%d)", v))
		}
	}
	return strings.Join(text, " "), expectedShape(operands, ops)
}

func TestNormalizePrecedenceCorpus(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		src, want := randomChain(r)
		decls := parseSource(t, "field int v = "+src+";")

		if err := Verify(decls); err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if got := Dump(decls[0].(*FieldDecl).Value); got != want {
			t.Fatalf("%s:\n got %s\nwant %s", src, got, want)
		}
	}
}

func TestNormalizePrecedenceInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		src, _ := randomChain(r)
		decls := parseSource(t, "fn int f() { return "+src+"; }")

		Inspect(decls[0], func(n Node) bool {
			op, ok := n.(*Operation)
			if !ok {
				return true
			}
			parent, ok := op.Parent().(*Operation)
			if !ok {
				return true
			}
			pl, cl := Level(parent.Op), Level(op.Op)
			if parent.Y == Expr(op) && pl <= cl {
				t.Errorf("%s: right operand %q under %q", src, op.Op, parent.Op)
			}
			if parent.X == Expr(op) && pl < cl {
				t.Errorf("%s: left operand %q under %q", src, op.Op, parent.Op)
			}
			return true
		})
	}
}

func TestNormalizePrecedenceReparents(t *testing.T) {
	decls := parseSource(t, "fn int f() return 1 * 2 - 3")
	fn := decls[0].(*FuncDecl)
	ret := fn.Body.(*ReturnStmt)

	root, ok := ret.Result.(*Operation)
	if !ok || root.Op != "-" {
		t.Fatalf("root = %s, want the - operation", Dump(ret.Result))
	}
	if root.ParentStmt() != Stmt(ret) {
		t.Errorf("root parent = %v, want the return statement", root.Parent())
	}
	if root.ParentExpr() != nil {
		t.Errorf("root has a parent expression")
	}

	mul := root.X.(*Operation)
	if mul.ParentExpr() != Expr(root) {
		t.Errorf("* parent is not the - operation")
	}
	two := mul.Y.(*IntLit)
	if two.Value != 2 || two.ParentExpr() != Expr(mul) {
		t.Errorf("moved operand %s has parent %v", Dump(two), two.Parent())
	}
	if err := Verify(decls); err != nil {
		t.Error(err)
	}
}

func TestNormalizePrecedenceInDefaults(t *testing.T) {
	decls := parseSource(t, "fn int f(int a = 1 * 2 + 3) return a")
	fn := decls[0].(*FuncDecl)
	def := fn.Params[0].Value
	if got, want := Dump(def), "op(op(int(1) * int(2)) + int(3))"; got != want {
		t.Errorf("default = %s, want %s", got, want)
	}
	if def.ParentDecl() != Decl(fn) {
		t.Errorf("default parent = %v, want the function", def.Parent())
	}
	if err := Verify(decls); err != nil {
		t.Error(err)
	}
}

func TestNormalizePrecedenceNested(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"f(1 * 2 - 3)", "call(f, op(op(int(1) * int(2)) - int(3)))"},
		{"a[1 - 2 - 3]", "arr(id(a)[op(op(int(1) - int(2)) - int(3))])"},
		{"(a - b - c) * d", "op(par(op(op(id(a) - id(b)) - id(c))) * id(d))"},
		{"(int) a - b - c", "cast(int, op(op(id(a) - id(b)) - id(c)))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := Dump(parseExpr(t, tt.src)); got != tt.want {
				t.Errorf("Dump = %s, want %s", got, tt.want)
			}
		})
	}
}
