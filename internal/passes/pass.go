// Package passes runs the post-parse passes over an AST forest.
package passes

import (
	"fmt"
	"io"
	"os"

	"github.com/you-not-fish/crosslang/internal/syntax"
)

// Pass describes a single AST pass.
type Pass struct {
	Name  string
	Fn    func(decls []syntax.Decl)
	Check func(decls []syntax.Decl) error // verifies the pass result; may be nil
}

// Config controls pass execution behavior.
type Config struct {
	DumpBefore string    // dump the forest before this pass ("*" for all)
	DumpAfter  string    // dump the forest after this pass ("*" for all)
	Verify     bool      // run each pass's Check after it
	Out        io.Writer // dump destination; defaults to os.Stderr
}

// Default returns the passes every parsed forest goes through: parent
// linking, then precedence normalization.
func Default() []Pass {
	return []Pass{
		{Name: "link", Fn: syntax.Link, Check: syntax.VerifyLinks},
		{Name: "precedence", Fn: syntax.NormalizePrecedence, Check: syntax.Verify},
	}
}

// Lookup returns the default pass with the given name.
func Lookup(name string) (Pass, bool) {
	for _, p := range Default() {
		if p.Name == name {
			return p, true
		}
	}
	return Pass{}, false
}

// Run executes the given passes on decls in order.
func Run(decls []syntax.Decl, passes []Pass, cfg Config) error {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	for _, p := range passes {
		if shouldDump(cfg.DumpBefore, p.Name) {
			fmt.Fprintf(out, "--- before %s ---\n", p.Name)
			syntax.FprintDecls(out, decls)
			fmt.Fprintln(out)
		}

		p.Fn(decls)

		if cfg.Verify && p.Check != nil {
			if err := p.Check(decls); err != nil {
				return fmt.Errorf("verify after %s: %w", p.Name, err)
			}
		}

		if shouldDump(cfg.DumpAfter, p.Name) {
			fmt.Fprintf(out, "--- after %s ---\n", p.Name)
			syntax.FprintDecls(out, decls)
			fmt.Fprintln(out)
		}
	}
	return nil
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}
