package compile

import (
	"os"

	"github.com/you-not-fish/crosslang/internal/syntax"
)

// LoadSource reads the file at path.
func LoadSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, &FileError{File: path, Stage: StageRead, Err: err}
	}
	defer f.Close()

	text, err := syntax.ReadSource(f)
	if err != nil {
		return Source{}, &FileError{File: path, Stage: StageRead, Err: err}
	}
	return Source{Name: path, Text: text}, nil
}

// LoadSources reads the files at paths, in order. It stops at the first
// file that cannot be read.
func LoadSources(paths []string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		src, err := LoadSource(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
