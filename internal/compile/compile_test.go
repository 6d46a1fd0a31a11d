package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/crosslang/internal/index"
	"github.com/you-not-fish/crosslang/internal/passes"
	"github.com/you-not-fish/crosslang/internal/syntax"
)

func run(t *testing.T, c *Compiler, sources ...Source) (*Result, error) {
	t.Helper()
	return c.Run(context.Background(), sources)
}

func fileError(t *testing.T, err error) *FileError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FileError", err)
	}
	return fe
}

func TestParseFile(t *testing.T) {
	c := New(WithVerify(true))
	f, err := c.ParseFile(Source{Name: "a.cl", Text: "fn int f() return 1 * 2 - 3\n"})
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(f.Decls) != 1 || len(f.Lines) != 1 || len(f.Tokens) != 11 {
		t.Fatalf("decls=%d lines=%d tokens=%d", len(f.Decls), len(f.Lines), len(f.Tokens))
	}
	ret := f.Decls[0].(*syntax.FuncDecl).Body.(*syntax.ReturnStmt)
	if got, want := syntax.Dump(ret.Result), "op(op(int(1) * int(2)) - int(3))"; got != want {
		t.Errorf("result = %s, want %s", got, want)
	}
}

func TestRunSingleFile(t *testing.T) {
	res, err := run(t, New(), Source{
		Name: "m.cl",
		Text: "module M { field int x = 1; function int f(int a) { return a + x; } }\n",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	m := res.Root.Module("M")
	if m == nil {
		t.Fatalf("module M missing:\n%s", res.Root)
	}
	if m.Field("x") == nil || m.Function("f", []syntax.TypeRef{syntax.NewTypeRef("int")}) == nil {
		t.Errorf("unexpected index:\n%s", res.Root)
	}
}

func TestRunManyFiles(t *testing.T) {
	var sources []Source
	for i := 0; i < 20; i++ {
		sources = append(sources, Source{
			Name: fmt.Sprintf("f%d.cl", i),
			Text: fmt.Sprintf("module M%d { fn int f(int a) return a * %d - 1 }\n", i, i),
		})
	}

	res, err := run(t, New(WithJobs(4)), sources...)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 20 {
		t.Fatalf("got %d files", len(res.Files))
	}
	for i, m := range res.Root.Modules() {
		if want := fmt.Sprintf("M%d", i); m.Name() != want {
			t.Errorf("module %d = %s, want %s (input order)", i, m.Name(), want)
		}
		if res.Files[i].Name != sources[i].Name {
			t.Errorf("file %d = %s, want %s", i, res.Files[i].Name, sources[i].Name)
		}
	}
}

func TestRunDumpsInInputOrder(t *testing.T) {
	var sources []Source
	for i := 0; i < 12; i++ {
		sources = append(sources, Source{
			Name: fmt.Sprintf("f%d.cl", i),
			Text: fmt.Sprintf("module M%d { field int x = %d * 2 + 1; }\n", i, i),
		})
	}

	// Each file parsed on its own gives the dump expected for it.
	var want bytes.Buffer
	for _, src := range sources {
		var buf bytes.Buffer
		c := New(WithPassConfig(passes.Config{DumpAfter: "*", Out: &buf}))
		if _, err := c.ParseFile(src); err != nil {
			t.Fatalf("ParseFile(%s): %v", src.Name, err)
		}
		fmt.Fprintf(&want, "=== %s ===\n", src.Name)
		buf.WriteTo(&want)
	}

	var got bytes.Buffer
	c := New(WithJobs(4), WithPassConfig(passes.Config{DumpAfter: "*", Out: &got}))
	if _, err := run(t, c, sources...); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.String() != want.String() {
		t.Errorf("dump output:\n%s\nwant:\n%s", got.String(), want.String())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name      string
		sources   []Source
		wantStage Stage
		wantFile  string
		wantLine  uint32
		wantMsg   string
	}{
		{
			name:      "tokenize",
			sources:   []Source{{Name: "a.cl", Text: "field int x;\n/* open\n"}},
			wantStage: StageTokenize,
			wantFile:  "a.cl",
			wantLine:  2,
			wantMsg:   "multiline comment",
		},
		{
			name:      "parse",
			sources:   []Source{{Name: "b.cl", Text: "module M {\n  field int = 1;\n}\n"}},
			wantStage: StageParse,
			wantFile:  "b.cl",
			wantLine:  2,
			wantMsg:   "",
		},
		{
			name: "index across files",
			sources: []Source{
				{Name: "a.cl", Text: "module U { }\n"},
				{Name: "b.cl", Text: "\n\nmodule U { }\n"},
			},
			wantStage: StageIndex,
			wantFile:  "b.cl",
			wantLine:  3,
			wantMsg:   "Duplicate namespace `U`",
		},
		{
			name: "first failing file wins",
			sources: []Source{
				{Name: "ok.cl", Text: "field int x;\n"},
				{Name: "bad1.cl", Text: "field int\n"},
				{Name: "bad2.cl", Text: "'open\n"},
			},
			wantStage: StageParse,
			wantFile:  "bad1.cl",
			wantLine:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, New(WithJobs(2)), tt.sources...)
			fe := fileError(t, err)
			if fe.Stage != tt.wantStage {
				t.Errorf("Stage = %s, want %s", fe.Stage, tt.wantStage)
			}
			if fe.File != tt.wantFile {
				t.Errorf("File = %s, want %s", fe.File, tt.wantFile)
			}
			if fe.Pos.Line() != tt.wantLine {
				t.Errorf("line = %d, want %d", fe.Pos.Line(), tt.wantLine)
			}
			if !strings.Contains(Message(err), tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", Message(err), tt.wantMsg)
			}
		})
	}
}

func TestFileErrorUnwrap(t *testing.T) {
	_, err := run(t, New(), Source{Name: "x.cl", Text: "field int x; field int x;\n"})
	var ie *index.IndexError
	if !errors.As(err, &ie) {
		t.Fatalf("errors.As(*index.IndexError) failed for %v", err)
	}
	if got, want := err.Error(), "x.cl:1:14: Duplicate field `x`"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Run(ctx, []Source{{Name: "a.cl", Text: "field int x;\n"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestStage(t *testing.T) {
	tests := []struct {
		stage Stage
		name  string
		code  int
	}{
		{StageRead, "reading", 1},
		{StageTokenize, "tokenizing", 2},
		{StageParse, "parsing", 3},
		{StageIndex, "indexing", 4},
	}
	for _, tt := range tests {
		if tt.stage.String() != tt.name || tt.stage.ExitCode() != tt.code {
			t.Errorf("stage %d = %s/%d, want %s/%d", tt.stage, tt.stage, tt.stage.ExitCode(), tt.name, tt.code)
		}
	}
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.cl")
	if err := os.WriteFile(a, []byte("field int x;\r\nfield int y;"), 0o600); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources([]string{a})
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if got, want := sources[0].Text, "field int x;\nfield int y;\n"; got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}

	_, err = LoadSources([]string{a, filepath.Join(dir, "missing.cl")})
	fe := fileError(t, err)
	if fe.Stage != StageRead || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v (stage %s)", err, fe.Stage)
	}
}
