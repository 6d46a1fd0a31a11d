package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/crosslang/internal/compile"
	"github.com/you-not-fish/crosslang/internal/export"
	"github.com/you-not-fish/crosslang/internal/index"
	"github.com/you-not-fish/crosslang/internal/passes"
	"github.com/you-not-fish/crosslang/internal/syntax"
)

func newTokensCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
}

// runTokens tokenizes filename and prints all tokens with positions.
func runTokens(stdout, stderr io.Writer, filename string) error {
	src, err := compile.LoadSource(filename)
	if err != nil {
		return reportFailure(stderr, err)
	}
	file, err := compile.New().TokenizeFile(src)
	if err != nil {
		return reportFailure(stderr, err)
	}

	// Print header
	fmt.Fprintf(stdout, "%-20s %-20s %s\n", "POSITION", "TOKEN", "TEXT")
	fmt.Fprintf(stdout, "%-20s %-20s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 20), strings.Repeat("-", 20))
	base := filepath.Base(filename)
	for _, t := range file.Tokens {
		fmt.Fprintf(stdout, "%-20s %-20s %s\n", file.Lines.Position(base, t.Offset), t.Kind, t.Text)
	}
	return nil
}

type astFlags struct {
	format     string
	verify     bool
	dumpBefore string
	dumpAfter  string
}

func newASTCmd(o *options) *cobra.Command {
	f := &astFlags{}
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the normalized syntax tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd.OutOrStdout(), cmd.ErrOrStderr(), o, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "text", "AST output format (text, json or dump)")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "verify the AST after each pass")
	cmd.Flags().StringVar(&f.dumpBefore, "dump-before", "", "dump the AST before pass (name or \"*\")")
	cmd.Flags().StringVar(&f.dumpAfter, "dump-after", "", "dump the AST after pass (name or \"*\")")
	return cmd
}

// runAST parses filename and outputs its AST.
func runAST(stdout, stderr io.Writer, o *options, f *astFlags, filename string) error {
	switch f.format {
	case "text", "json", "dump":
	default:
		return fmt.Errorf("unknown AST format %q", f.format)
	}

	src, err := compile.LoadSource(filename)
	if err != nil {
		return reportFailure(stderr, err)
	}
	c := compile.New(
		compile.WithVerify(f.verify || o.cfg.Build.Verify),
		compile.WithPassConfig(passes.Config{DumpBefore: f.dumpBefore, DumpAfter: f.dumpAfter, Out: stderr}),
	)
	file, err := c.ParseFile(src)
	if err != nil {
		return reportFailure(stderr, err)
	}

	switch f.format {
	case "json":
		return syntax.FprintJSON(stdout, file.Decls)
	case "dump":
		for _, d := range file.Decls {
			fmt.Fprintln(stdout, syntax.Dump(d))
		}
	default:
		syntax.FprintDecls(stdout, file.Decls)
	}
	return nil
}

type indexFlags struct {
	format string
	output string
	jobs   int
	verify bool
}

func newIndexCmd(o *options) *cobra.Command {
	f := &indexFlags{}
	cmd := &cobra.Command{
		Use:   "index [files...]",
		Short: "Build the module index of a set of files",
		Long: `Build the module index of the given files, or of the project's source
files when no file is given. All files share one index, so duplicate
declarations are detected across files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, o, f, args)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "", "output format: text, json, yaml or cbor (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default from config, else stdout)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "files parsed concurrently (default from config, else GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "verify every AST after each pass")
	return cmd
}

// runIndex indexes the files and writes the result.
func runIndex(cmd *cobra.Command, o *options, f *indexFlags, files []string) error {
	stderr := cmd.ErrOrStderr()

	formatName := o.cfg.Output.Format
	if f.format != "" {
		formatName = f.format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		files, err = o.cfg.SourceFiles()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files")
		}
	}

	sources, err := compile.LoadSources(files)
	if err != nil {
		return reportFailure(stderr, err)
	}

	jobs := o.cfg.Build.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = f.jobs
	}
	c := compile.New(
		compile.WithJobs(jobs),
		compile.WithVerify(f.verify || o.cfg.Build.Verify),
	)
	res, err := c.Run(cmd.Context(), sources)
	if err != nil {
		return reportFailure(stderr, err)
	}

	path := o.cfg.OutputPath()
	if cmd.Flags().Changed("output") {
		path = f.output
	}
	if path == "" {
		return export.Encode(cmd.OutOrStdout(), res.Root, format)
	}
	return writeIndexFile(path, res.Root, format)
}

// writeIndexFile encodes root into the file at path. A failure to close
// the file is reported like a write failure.
func writeIndexFile(path string, root *index.ModuleIndex, format export.Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Encode(file, root, format); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crosslangc version %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "go version %s\n", runtime.Version())
		},
	}
}
