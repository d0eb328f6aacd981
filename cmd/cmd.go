// Package cmd wires the TripleS interpreter to a command line: flag
// parsing and logging setup via cobra/logrus, then dispatch to either a
// line-at-a-time REPL or a single file, per spec.md's external-interface
// contract. None of this drives the language semantics itself — it is
// the "top-level driver" the core interpreter treats as an external
// collaborator.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/triples-lang/triples/debug"
	e "github.com/triples-lang/triples/errors"
	"github.com/triples-lang/triples/internal/vm"
)

// Exit codes per spec.md §6: 0 success, 65 compile error, 70 runtime
// error. Any other non-zero code is the driver's own (I/O failure, bad
// usage), not part of the language's contract.
const (
	ExitOK            = 0
	ExitCompileError  = 65
	ExitRuntimeError  = 70
	ExitUsageOrIOFail = 74
)

// App builds the `triples` root command: zero args enters the REPL, one
// positional arg interprets that file.
func App() *cobra.Command {
	app := &cobra.Command{
		Use:   "triples [script]",
		Short: "Run the TripleS interpreter",
		Args:  cobra.MaximumNArgs(1),
	}

	app.Flags().SortFlags = true
	const defaultVerbosity = "INFO"
	verbosity := app.Flags().StringP("verbosity", "v", defaultVerbosity, "Logging verbosity")

	app.RunE = func(_ *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(*verbosity)
		if err != nil {
			lvl, _ = logrus.ParseLevel(defaultVerbosity)
		}
		logrus.SetLevel(lvl)
		logrus.SetFormatter(&easy.Formatter{LogFormat: "//DBG// %msg%\n"})
		debug.DEBUG = lvl >= logrus.DebugLevel

		switch len(args) {
		case 0:
			return runREPL()
		default:
			return runFile(args[0])
		}
	}
	return app
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		os.Exit(ExitUsageOrIOFail)
	}

	machine := vm.New()
	if err := machine.Interpret(string(src)); err != nil {
		logAndReport(err)
		os.Exit(exitCodeFor(err))
	}
	return nil
}

// runREPL drives one persistent VM with a readline-backed prompt,
// interpreting each line as an independent compilation that shares the
// VM's globals and interned strings with every line before it.
func runREPL() error {
	rl, err := readline.New(">> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	machine := vm.New()
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			if errors.Is(err, io.EOF) {
				return nil
			}
			continue
		}
		if err := machine.Interpret(line); err != nil {
			logAndReport(err)
		}
	}
}

// exitCodeFor classifies an Interpret error into spec.md's exit-code
// contract. A compile failure surfaces as a *multierror.Error wrapping
// one or more *errors.CompilationError; a runtime failure surfaces as a
// single *errors.RuntimeError.
func exitCodeFor(err error) int {
	var rerr *e.RuntimeError
	if errors.As(err, &rerr) {
		return ExitRuntimeError
	}
	return ExitCompileError
}

// logAndReport prints every accumulated compile error to stderr. The
// runtime error path already printed its own diagnostic inside the VM
// before returning, so it is a no-op here.
func logAndReport(err error) {
	var rerr *e.RuntimeError
	if errors.As(err, &rerr) {
		return
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, inner := range merr.Errors {
			fmt.Fprintln(os.Stderr, inner)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
