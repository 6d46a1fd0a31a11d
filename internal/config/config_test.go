package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
[project]
name = "demo"

[source]
dirs = ["src"]
files = ["extra/main.cl"]

[build]
jobs = 3
verify = true

[output]
format = "yaml"
path = "out/index.yaml"

[log]
verbosity = 2
file = "crosslang.log"
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Project.Name != "demo" || c.Build.Jobs != 3 || !c.Build.Verify {
		t.Errorf("unexpected config: %+v", c)
	}
	if c.Output.Format != "yaml" || c.OutputPath() != filepath.Join(c.Dir, "out", "index.yaml") {
		t.Errorf("output = %+v, path %s", c.Output, c.OutputPath())
	}
	if c.Log.Verbosity != 2 || c.LogFile() == nil || *c.LogFile() != filepath.Join(c.Dir, "crosslang.log") {
		t.Errorf("log = %+v", c.Log)
	}
	if len(c.Source.Extensions) != 1 || c.Source.Extensions[0] != ".cl" {
		t.Errorf("default extensions = %v", c.Source.Extensions)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[project]\nname = \"x\"\n")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Source.Dirs) != 1 || c.Source.Dirs[0] != "." {
		t.Errorf("Dirs = %v, want [.]", c.Source.Dirs)
	}
	if c.Output.Format != "text" {
		t.Errorf("Format = %q, want text", c.Output.Format)
	}
	if c.OutputPath() != "" || c.LogFile() != nil {
		t.Error("unset paths resolved to a file")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[project\n", "parse error"},
		{"type", "[build]\njobs = \"many\"\n", "parse error"},
		{"negative jobs", "[build]\njobs = -1\n", "build.jobs"},
		{"format", "[output]\nformat = \"xml\"\n", "unknown output.format"},
		{"extension", "[source]\nextensions = [\"cl\"]\n", "must start with"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, FileName), tt.content)
			_, err := Load(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[project]\nname = \"root\"\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if c == nil || c.Project.Name != "root" {
		t.Fatalf("config = %+v", c)
	}
	want, _ := filepath.Abs(dir)
	if c.Dir != want {
		t.Errorf("Dir = %s, want %s", c.Dir, want)
	}
}

func TestSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), `
[source]
dirs = ["src"]
files = ["main.cl", "src/b.cl"]
`)
	for _, f := range []string{"main.cl", "src/b.cl", "src/a.cl", "src/sub/c.cl", "src/notes.txt", "src/.hidden/d.cl"} {
		writeFile(t, filepath.Join(dir, f), "")
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	files, err := c.SourceFiles()
	if err != nil {
		t.Fatalf("SourceFiles: %v", err)
	}

	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(c.Dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := "main.cl src/b.cl src/a.cl src/sub/c.cl"
	if got := strings.Join(rel, " "); got != want {
		t.Errorf("SourceFiles = %s, want %s", got, want)
	}
}

func TestSourceFilesMissingDir(t *testing.T) {
	c := Default()
	c.Dir = t.TempDir()
	c.Source.Dirs = []string{"nope"}
	if _, err := c.SourceFiles(); err == nil {
		t.Error("expected error for a missing source directory")
	}
}
