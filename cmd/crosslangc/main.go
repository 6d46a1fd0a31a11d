// Package main implements the crosslang front-end entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/you-not-fish/crosslang/internal/config"

	_ "github.com/tliron/commonlog/simple"
)

// Version information
const Version = "0.1.0-dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// exitError carries a process exit status out of a command. The failure
// has already been reported when it is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// options holds the global flags and the loaded configuration.
type options struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

// execute runs the command line args and returns the exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "crosslangc",
		Short: "crosslang front end",
		Long: `crosslangc tokenizes, parses and indexes crosslang sources.

Commands:
  tokens   - print the token stream of a file
  ast      - print the normalized syntax tree of a file
  index    - build the module index of a set of files`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
	}

	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	root.PersistentFlags().CountVarP(&o.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	root.AddCommand(
		newTokensCmd(o),
		newASTCmd(o),
		newIndexCmd(o),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and configures logging.
func (o *options) setup() error {
	var err error
	switch {
	case o.configPath != "":
		o.cfg, err = config.LoadFile(o.configPath)
	default:
		o.cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	if o.cfg == nil {
		o.cfg = config.Default()
	}

	commonlog.Configure(o.cfg.Log.Verbosity+o.verbose, o.cfg.LogFile())
	return nil
}
