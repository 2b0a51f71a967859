package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feather-lang/feather/interp"
)

func newRunCommand(cfg config) *cobra.Command {
	var traceVerbose bool
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			it := newInterp(cfg, traceVerbose)
			it.GlobalFrame().SetScalar("argv0", interp.NewString(args[0]))
			v, err := it.Eval(string(src))
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, v.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&traceVerbose, "trace", cfg.TraceVerbose, "print dispatch/error/coroutine trace events")
	return cmd
}
