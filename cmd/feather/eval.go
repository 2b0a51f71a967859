package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newEvalCommand(cfg config) *cobra.Command {
	var traceVerbose bool
	cmd := &cobra.Command{
		Use:   "eval <script>",
		Short: "Evaluate a script passed as a single argument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it := newInterp(cfg, traceVerbose)
			v, err := it.Eval(args[0])
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
