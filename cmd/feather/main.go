// Command feather is the CLI shell around the engine's embeddable Interp:
// eval/run one-shot evaluation, an interactive REPL, and introspection
// meta-commands (SPEC_FULL.md §0).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feather-lang/feather/interp"
	"github.com/feather-lang/feather/internal/hostutil"
)

// newInterp builds an Interp wired to a fresh hostutil.Host and, if
// verbose tracing is requested, a lipgloss-styled Trace hook writing to
// stderr.
func newInterp(cfg config, traceVerbose bool) *interp.Interp {
	opt := interp.Options{
		RecursionLimit: cfg.RecursionLimit,
		Host:           hostutil.New(),
		Args:           os.Args,
	}
	if traceVerbose || cfg.TraceVerbose {
		opt.Trace = newLipglossTrace(os.Stderr, traceVerbose)
	}
	return interp.New(opt)
}

func newReplCommand(cfg config) *cobra.Command {
	var traceVerbose bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			it := newInterp(cfg, traceVerbose)
			return runREPL(it, cfg, os.Stdout)
		},
	}
	cmd.Flags().BoolVar(&traceVerbose, "trace", cfg.TraceVerbose, "print dispatch/error/coroutine trace events")
	return cmd
}

func newRootCommand(cfg config) *cobra.Command {
	root := &cobra.Command{
		Use:   "feather",
		Short: "feather is an embeddable, Tcl-like command-language interpreter",
	}
	root.AddCommand(newEvalCommand(cfg))
	root.AddCommand(newRunCommand(cfg))
	root.AddCommand(newReplCommand(cfg))
	return root
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "feather: loading ~/.featherrc.toml:", err)
		os.Exit(1)
	}
	if err := newRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "feather:", err)
		os.Exit(1)
	}
}
