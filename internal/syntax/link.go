package syntax

// Link sets the parent back-reference of every node in the forest to its
// immediate syntactic container. Root declarations get a nil parent.
// Function parameters and their default values are parented to the
// function.
func Link(decls []Decl) {
	for _, d := range decls {
		d.setParent(nil)
		link(d)
	}
}

func link(n Node) {
	if fn, ok := n.(*FuncDecl); ok {
		for _, p := range fn.Params {
			p.setParent(fn)
		}
	}
	for _, c := range Children(n) {
		c.setParent(n)
		link(c)
	}
}
