package syntax

import (
	"fmt"
	"sort"
)

// Pos represents a position in a source file.
// The zero value is an invalid position.
type Pos struct {
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column number (byte offset in line)
}

// NewPos creates a new Pos with the given filename, line, and column.
// Line and column numbers are 1-based.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String returns a string representation of the position in the format
// "filename:line:col" or "line:col" if filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number (byte offset in line).
func (p Pos) Col() uint32 {
	return p.col
}

// Filename returns the source file name.
func (p Pos) Filename() string {
	return p.filename
}

// LineTable holds the byte offsets of all line breaks of a source text,
// in increasing order. It is produced by Tokenize.
type LineTable []int

// Line returns the 1-based line containing the byte at offset.
// A negative offset (end of input) and any offset past the final line
// break map to the line that break ends.
func (lt LineTable) Line(offset int) int {
	if len(lt) == 0 {
		return 1
	}
	if offset < 0 || offset > lt[len(lt)-1] {
		return len(lt)
	}
	// Number of line breaks strictly before offset.
	return sort.SearchInts(lt, offset) + 1
}

// Position converts a byte offset into a Pos for filename.
func (lt LineTable) Position(filename string, offset int) Pos {
	line := lt.Line(offset)
	if offset < 0 {
		return NewPos(filename, uint32(line), 1)
	}
	start := 0
	if line > 1 {
		start = lt[line-2] + 1
	}
	return NewPos(filename, uint32(line), uint32(offset-start+1))
}
