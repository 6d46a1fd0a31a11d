package e2e

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/crosslang/internal/compile"
	"github.com/you-not-fish/crosslang/internal/index"
)

var update = flag.Bool("update", false, "rewrite .golden files with the current output")

// TestE2E runs the front end over every case in testdata/ and compares the
// result with the case's .golden file. A case is either a single .cl file
// or a directory whose .cl files are compiled together, in name order.
// Each case:
//  1. Loads the sources
//  2. Runs tokenize → parse → link → precedence → index
//  3. Renders the module index, or the failure if a stage failed
//  4. Compares the rendering against the .golden file
func TestE2E(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}

	var cases int
	for _, e := range entries {
		name := e.Name()
		var files []string
		switch {
		case e.IsDir():
			files, err = filepath.Glob(filepath.Join("testdata", name, "*.cl"))
			if err != nil {
				t.Fatal(err)
			}
		case strings.HasSuffix(name, ".cl"):
			files = []string{filepath.Join("testdata", name)}
			name = strings.TrimSuffix(name, ".cl")
		default:
			continue
		}
		cases++

		t.Run(name, func(t *testing.T) {
			runE2ETest(t, files, filepath.Join("testdata", name+".golden"))
		})
	}
	if cases == 0 {
		t.Fatal("no test cases found in testdata/")
	}
}

// runE2ETest runs a single end-to-end test.
func runE2ETest(t *testing.T, files []string, goldenFile string) {
	t.Helper()
	if len(files) == 0 {
		t.Fatal("case has no .cl files")
	}

	got := compileAll(t, files)

	if *update {
		if err := os.WriteFile(goldenFile, []byte(got), 0o644); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if got != string(expected) {
		t.Errorf("output mismatch\n--- expected ---\n%s\n--- got ---\n%s", expected, got)
	}
}

// compileAll runs the whole front end over files and renders the outcome.
func compileAll(t *testing.T, files []string) string {
	t.Helper()

	sources, err := compile.LoadSources(files)
	if err != nil {
		t.Fatalf("loading sources: %v", err)
	}

	c := compile.New(compile.WithVerify(true), compile.WithJobs(2))
	res, err := c.Run(context.Background(), sources)
	if err != nil {
		var fe *compile.FileError
		if !errors.As(err, &fe) {
			t.Fatalf("unexpected error: %v", err)
		}
		return fmt.Sprintf("%s failed at %s:%d: %s\n",
			fe.Stage, filepath.Base(fe.File), fe.Pos.Line(), compile.Message(fe.Err))
	}
	if len(res.Files) != len(files) {
		t.Fatalf("got %d files, want %d", len(res.Files), len(files))
	}

	var b strings.Builder
	index.Fprint(&b, res.Root)
	return b.String()
}
