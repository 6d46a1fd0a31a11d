package compile

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/crosslang/internal/index"
	"github.com/you-not-fish/crosslang/internal/syntax"
)

// Stage identifies the front-end stage that failed. Its numeric value is
// the process exit status used by the command line driver.
type Stage int

const (
	StageRead Stage = iota + 1
	StageTokenize
	StageParse
	StageIndex
)

var stageNames = [...]string{
	StageRead:     "reading",
	StageTokenize: "tokenizing",
	StageParse:    "parsing",
	StageIndex:    "indexing",
}

func (s Stage) String() string {
	if s > 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ExitCode returns the process exit status for a failure in stage s.
func (s Stage) ExitCode() int {
	return int(s)
}

// FileError is a failure of one input file. Err is the stage error
// (*syntax.TokenizeError, *syntax.ParseError, *index.IndexError, or an I/O
// error for StageRead).
type FileError struct {
	File  string
	Stage Stage
	Pos   syntax.Pos // invalid if the error has no source position
	Err   error
}

func (e *FileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, Message(e.Err))
	}
	return fmt.Sprintf("%s: %s", e.File, Message(e.Err))
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Message returns the bare message of a stage error, without the offset
// prefix the stage errors carry in their Error strings.
func Message(err error) string {
	var (
		te *syntax.TokenizeError
		pe *syntax.ParseError
		ie *index.IndexError
	)
	switch {
	case errors.As(err, &te):
		return te.Msg
	case errors.As(err, &pe):
		return pe.Msg
	case errors.As(err, &ie):
		return ie.Msg
	}
	return err.Error()
}

// newFileError wraps err, locating it in the file if it carries an offset.
func newFileError(name string, stage Stage, lines syntax.LineTable, err error) *FileError {
	fe := &FileError{File: name, Stage: stage, Err: err}
	if off, ok := offsetOf(err); ok {
		fe.Pos = lines.Position(name, off)
	}
	return fe
}

func offsetOf(err error) (int, bool) {
	switch e := err.(type) {
	case *syntax.TokenizeError:
		return e.Offset, true
	case *syntax.ParseError:
		return e.Offset, true
	case *index.IndexError:
		return e.Offset, e.Offset >= 0
	}
	return 0, false
}
