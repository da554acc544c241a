// Command cvm runs and checks CVM assembly source files (SPEC_FULL.md
// §6 FULL).
package main

import (
	"fmt"
	"os"

	"cvm/asm"
	"cvm/compiler"
	"cvm/diagnostics"
	"cvm/env"
	"cvm/runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	debug    bool
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cvm",
		Short:         "cvm runs register-based virtual machine programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return withRecover(func() error { return run(args[0]) })
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "shorthand for --log-level=debug")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level: panic, fatal, error, warn, info, debug, trace")
	root.AddCommand(newRunCmd(), newCheckCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <source-file>",
		Short: "parse, compile, and execute a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecover(func() error { return run(args[0]) })
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <source-file>",
		Short: "parse and compile a source file without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRecover(func() error { return check(args[0]) })
		},
	}
}

// withRecover converts any panic raised while parsing, compiling, or
// running a source file into the same §6 diagnostic-and-exit path as an
// ordinary error, satisfying §7's "assertion failure on malformed
// runtime instruction" for the cases that slip past an explicit check.
func withRecover(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			wrapped := diagnostics.AtToken(diagnostics.Runtime, diagnostics.ErrInternal, fmt.Sprint(r), 0)
			fmt.Fprintln(os.Stderr, wrapped)
			err = wrapped
		}
	}()
	return fn()
}

func level() logrus.Level {
	if debug {
		return logrus.DebugLevel
	}
	parsed, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// compile reads, parses, and compiles source into a runtime-ready
// program, returning the errors of the first stage that fails. Parse
// errors carry the §6 diagnostic message format; compile errors do not:
// they are pkg/errors wraps prefixed "line <n>:" (or the bare wrap, for
// an undefined stvarb type or entry function).
func compile(path string) (*compiler.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	prog, err := asm.Parse(string(source))
	if err != nil {
		return nil, err
	}

	out, err := compiler.Compile(prog)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func check(path string) error {
	logger := diagnostics.NewLogger(level())
	if _, err := compile(path); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, e)
		}
		return err
	}
	logger.Debug("check ok")
	return nil
}

func run(path string) error {
	logger := diagnostics.NewLogger(level())
	out, err := compile(path)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, e)
		}
		return err
	}

	fn, ok := out.Functions[out.Entry]
	if !ok {
		err := diagnostics.AtToken(diagnostics.Runtime, compiler.ErrUndefinedFunction, out.Entry, 0)
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	global := env.NewGlobal(out.Registry, out.Pool)
	local := env.NewLocal(global, fn, nil)

	if err := runtime.Run(logger, local); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
