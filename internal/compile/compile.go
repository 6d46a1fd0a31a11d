// Package compile drives the front end over a set of source files:
// tokenizing, parsing and post-parse passes per file, then indexing all
// files into one shared module tree.
package compile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/crosslang/internal/index"
	"github.com/you-not-fish/crosslang/internal/passes"
	"github.com/you-not-fish/crosslang/internal/syntax"
)

// Source is one input text and the name used to report errors in it.
type Source struct {
	Name string
	Text string
}

// File is the front-end result for one source.
type File struct {
	Name   string
	Tokens []syntax.Token
	Lines  syntax.LineTable
	Decls  []syntax.Decl
}

// Result is the outcome of a successful run.
type Result struct {
	Root  *index.ModuleIndex
	Files []*File // in input order
}

// Compiler runs the front end. The zero value is not usable; use New.
type Compiler struct {
	Jobs   int           // files parsed concurrently; <= 0 means GOMAXPROCS
	Verify bool          // verify every forest after each pass
	Passes passes.Config // dump options for the post-parse passes

	log commonlog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithJobs bounds the number of files parsed concurrently.
func WithJobs(n int) Option {
	return func(c *Compiler) { c.Jobs = n }
}

// WithVerify enables AST verification after each pass.
func WithVerify(v bool) Option {
	return func(c *Compiler) { c.Verify = v }
}

// WithPassConfig sets the dump options of the post-parse passes.
func WithPassConfig(cfg passes.Config) Option {
	return func(c *Compiler) { c.Passes = cfg }
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{log: commonlog.GetLogger("crosslang.compile")}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) jobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// TokenizeFile tokenizes src. The returned File has no declarations.
func (c *Compiler) TokenizeFile(src Source) (*File, error) {
	tokens, lines, err := syntax.Tokenize(src.Text)
	if err != nil {
		return nil, newFileError(src.Name, StageTokenize, lines, err)
	}
	c.log.Debug("tokenized", "file", src.Name, "tokens", len(tokens), "lines", len(lines))
	return &File{Name: src.Name, Tokens: tokens, Lines: lines}, nil
}

// ParseFile tokenizes and parses src and runs the post-parse passes over
// the result. Failures are returned as *FileError.
func (c *Compiler) ParseFile(src Source) (*File, error) {
	return c.parseFile(src, c.Passes.Out)
}

// dumps reports whether the pass configuration dumps any forest.
func (c *Compiler) dumps() bool {
	return c.Passes.DumpBefore != "" || c.Passes.DumpAfter != ""
}

// parseFile is ParseFile with pass dumps written to out.
func (c *Compiler) parseFile(src Source, out io.Writer) (*File, error) {
	f, err := c.TokenizeFile(src)
	if err != nil {
		return nil, err
	}
	tokens, lines := f.Tokens, f.Lines

	decls, err := syntax.ParseRaw(tokens)
	if err != nil {
		return nil, newFileError(src.Name, StageParse, lines, err)
	}

	cfg := c.Passes
	cfg.Verify = cfg.Verify || c.Verify
	cfg.Out = out
	if err := passes.Run(decls, passes.Default(), cfg); err != nil {
		return nil, &FileError{File: src.Name, Stage: StageParse, Err: err}
	}
	c.log.Debug("parsed", "file", src.Name, "decls", len(decls))

	return &File{Name: src.Name, Tokens: tokens, Lines: lines, Decls: decls}, nil
}

// Run parses every source and indexes the results into a fresh root
// module. Sources are parsed concurrently, each with its own tokens and
// AST; indexing is sequential in input order, so duplicate detection
// reports the later declaration. The first failing source in input order
// determines the returned error. Pass dumps are collected per file and
// written in input order.
func (c *Compiler) Run(ctx context.Context, sources []Source) (*Result, error) {
	files := make([]*File, len(sources))
	errs := make([]error, len(sources))
	var dumps []bytes.Buffer
	if c.dumps() {
		dumps = make([]bytes.Buffer, len(sources))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs())
	for i, src := range sources {
		i, src := i, src // per-iteration copies; the module targets go 1.21
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var out io.Writer = c.Passes.Out
			if dumps != nil {
				out = &dumps[i]
			}
			files[i], errs[i] = c.parseFile(src, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if dumps != nil {
		if err := c.writeDumps(sources, dumps); err != nil {
			return nil, err
		}
	}
	for _, err := range errs {
		if err != nil {
			c.log.Error("front end failed", "error", err.Error())
			return nil, err
		}
	}

	root := index.NewModule()
	for _, f := range files {
		if err := index.IndexDecls(root, f.Decls); err != nil {
			fe := newFileError(f.Name, StageIndex, f.Lines, err)
			c.log.Error("indexing failed", "error", fe.Error())
			return nil, fe
		}
		c.log.Debug("indexed", "file", f.Name)
	}

	c.log.Info("compiled", "files", len(files), "members", root.NumMembers())
	return &Result{Root: root, Files: files}, nil
}

// writeDumps copies the per-file pass dumps to the configured output,
// each under a header naming its file.
func (c *Compiler) writeDumps(sources []Source, dumps []bytes.Buffer) error {
	out := c.Passes.Out
	if out == nil {
		out = os.Stderr
	}
	for i := range dumps {
		if dumps[i].Len() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(out, "=== %s ===\n", sources[i].Name); err != nil {
			return err
		}
		if _, err := dumps[i].WriteTo(out); err != nil {
			return err
		}
	}
	return nil
}
