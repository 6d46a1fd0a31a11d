package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/you-not-fish/crosslang/internal/compile"
)

// Colors
var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
)

// Styles
var (
	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true)
)

var stageHints = map[compile.Stage][]string{
	compile.StageRead: {
		"The compiler could not read one of its input files.",
	},
	compile.StageTokenize: {
		"This means the compiler failed to split the file up into tokens (words).",
		"This is normally caused by an unclosed string/comment.",
	},
	compile.StageParse: {
		"This means the compiler was unable to deduce the structure of the code.",
		"This is normally caused by a syntax error.",
	},
	compile.StageIndex: {
		"This occurs when the compiler is trying to build an index (dictionary) of fields, functions, etc.",
	},
}

// reportFailure prints a failure banner for err to w and returns an
// exitError with the status of the failed stage.
func reportFailure(w io.Writer, err error) *exitError {
	var fe *compile.FileError
	if !errors.As(err, &fe) {
		fmt.Fprintln(w, failureStyle.Render("COMPILATION FAILED!"))
		fmt.Fprintf(w, "%s %v\n", labelStyle.Render("Message:"), err)
		return &exitError{code: 1}
	}

	fmt.Fprintln(w, failureStyle.Render("COMPILATION FAILED WHILE "+strings.ToUpper(fe.Stage.String())+"!"))
	for _, h := range stageHints[fe.Stage] {
		fmt.Fprintln(w, hintStyle.Render(h))
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("File:"), fe.File)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Message:"), compile.Message(fe.Err))
	if fe.Pos.IsValid() {
		fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Line number:"), fe.Pos.Line())
	}
	return &exitError{code: fe.Stage.ExitCode()}
}
