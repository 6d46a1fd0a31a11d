package index

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the module tree rooted at m to w: submodules first, then
// fields, then functions, each group in declaration order.
//
//	Module M:
//	{
//	  Field: int x
//	  Function: int f (int)
//	}
func Fprint(w io.Writer, m *ModuleIndex) {
	writeModule(w, m, 0)
}

// String returns the Fprint rendering of m.
func (m *ModuleIndex) String() string {
	var buf strings.Builder
	writeModule(&buf, m, 0)
	return buf.String()
}

func writeModule(w io.Writer, m *ModuleIndex, indent int) {
	prefix := strings.Repeat("  ", indent)
	if m.named {
		fmt.Fprintf(w, "%sModule %s:\n", prefix, m.name)
	} else {
		fmt.Fprintf(w, "%sModule:\n", prefix)
	}
	fmt.Fprintf(w, "%s{\n", prefix)
	for _, sub := range m.modules {
		writeModule(w, sub, indent+1)
	}
	for _, f := range m.fields {
		fmt.Fprintf(w, "%s  Field: %s\n", prefix, f)
	}
	for _, f := range m.functions {
		fmt.Fprintf(w, "%s  Function: %s\n", prefix, f)
	}
	fmt.Fprintf(w, "%s}\n", prefix)
}
