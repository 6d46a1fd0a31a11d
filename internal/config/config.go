// Package config handles crosslang.toml project configuration.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the project configuration file.
const FileName = "crosslang.toml"

// Config represents a crosslang.toml project configuration.
type Config struct {
	Project Project `toml:"project"`
	Source  Source  `toml:"source"`
	Build   Build   `toml:"build"`
	Output  Output  `toml:"output"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the crosslang.toml file (set at load
	// time). Relative paths in the configuration are resolved against it.
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name string `toml:"name"`
}

// Source configures source file locations.
type Source struct {
	Dirs       []string `toml:"dirs"`
	Files      []string `toml:"files"`
	Extensions []string `toml:"extensions"`
}

// Build configures the front end.
type Build struct {
	Jobs   int  `toml:"jobs"`
	Verify bool `toml:"verify"`
}

// Output configures the index export.
type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no crosslang.toml exists.
func Default() *Config {
	return &Config{
		Source: Source{
			Dirs:       []string{"."},
			Extensions: []string{".cl"},
		},
		Output: Output{Format: "text"},
		Dir:    ".",
	}
}

// Load parses a crosslang.toml file from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	c.Source.Dirs = nil
	if _, err := toml.Decode(string(data), c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	// Defaults
	if len(c.Source.Dirs) == 0 && len(c.Source.Files) == 0 {
		c.Source.Dirs = []string{"."}
	}
	if len(c.Source.Extensions) == 0 {
		c.Source.Extensions = []string{".cl"}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a crosslang.toml file, then
// loads and returns it. Returns nil if no configuration file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Formats lists the accepted values of output.format.
var Formats = []string{"text", "json", "yaml", "cbor"}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Build.Jobs < 0 {
		return fmt.Errorf("build.jobs must not be negative, got %d", c.Build.Jobs)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	if c.Output.Format != "" && !contains(Formats, c.Output.Format) {
		return fmt.Errorf("unknown output.format %q (want one of %s)", c.Output.Format, strings.Join(Formats, ", "))
	}
	for _, ext := range c.Source.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("source extension %q must start with '.'", ext)
		}
	}
	return nil
}

// SourceFiles returns the source files of the project: the explicitly
// listed files followed by every file under the source directories whose
// extension matches, each group sorted. Duplicates are removed.
func (c *Config) SourceFiles() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, f := range c.Source.Files {
		add(c.resolve(f))
	}

	var found []string
	for _, d := range c.Source.Dirs {
		root := c.resolve(d)
		err := filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if e.IsDir() {
				if path != root && strings.HasPrefix(e.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if contains(c.Source.Extensions, filepath.Ext(path)) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	}
	sort.Strings(found)
	for _, f := range found {
		add(f)
	}
	return files, nil
}

// OutputPath returns the resolved export path, or "" for standard output.
func (c *Config) OutputPath() string {
	if c.Output.Path == "" {
		return ""
	}
	return c.resolve(c.Output.Path)
}

// LogFile returns the resolved log file path, or nil for standard error.
func (c *Config) LogFile() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.resolve(c.Log.File)
	return &path
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
