// Command lox is the tree-walking Lox-family interpreter's CLI driver. It
// dispatches the four file-based subcommands spec.md §6 defines
// (tokenize, parse, evaluate, run) plus an interactive repl, exiting with
// the codes spec.md's table assigns: 0 success, 65 scan/parse error, 70
// runtime error.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lox-run/lox/internal/repl"
	"github.com/lox-run/lox/internal/runner"
)

func main() {
	os.Exit(run())
}

// run builds and executes the root command, returning the process exit
// code. It is separated from main so os.Exit only happens once, at the
// top level.
func run() int {
	exitCode := 0

	root := &cobra.Command{
		Use:           "lox",
		Short:         "A tree-walking interpreter for the Lox scripting language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	subcommand := func(use, short string, fn func(path string, out, errOut *os.File) int) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <path>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				exitCode = fn(args[0], os.Stdout, os.Stderr)
				return nil
			},
		}
	}

	root.AddCommand(
		subcommand("tokenize", "Scan a source file and print one token per line", func(path string, out, errOut *os.File) int {
			return runner.Tokenize(path, out, errOut)
		}),
		subcommand("parse", "Scan and parse a single expression, printing its AST form", func(path string, out, errOut *os.File) int {
			return runner.Parse(path, out, errOut)
		}),
		subcommand("evaluate", "Scan, parse, and evaluate a single expression", func(path string, out, errOut *os.File) int {
			return runner.Evaluate(path, out, errOut)
		}),
		subcommand("run", "Scan, parse, and execute a program", func(path string, out, errOut *os.File) int {
			return runner.Run(path, out, errOut)
		}),
		&cobra.Command{
			Use:   "repl",
			Short: "Start an interactive read-eval-print loop",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				exitCode = repl.Run(os.Stdout)
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}
