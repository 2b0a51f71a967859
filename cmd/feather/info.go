package main

import (
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/feather-lang/feather/interp"
)

// printNameList renders the result of `info vars`/`info procs`/`info
// commands` (a feather list value) as a one-column table, backing the
// REPL's `:info vars`/`:info procs`/`:info commands` meta-commands.
func printNameList(w io.Writer, header string, v *interp.Value) error {
	elems, err := v.AsList()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{header})
	for _, e := range elems {
		table.Append([]string{e.String()})
	}
	table.Render()
	return nil
}

// printMem renders `:info mem`: the arena's cumulative logical allocation
// count and the current frame nesting depth, humanized the way
// `adest-aes-scripts`' tooling humanizes byte counts for operators.
func printMem(w io.Writer, it *interp.Interp) {
	bytes, arenaDepth := it.ArenaStats()
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "value"})
	table.Append([]string{"arena bytes", humanize.Bytes(uint64(bytes))})
	table.Append([]string{"arena depth", humanize.Comma(int64(arenaDepth))})
	table.Append([]string{"frame depth", humanize.Comma(int64(it.FrameDepth()))})
	table.Render()
}

// runMetaCommand dispatches a REPL `:info ...` line; ok reports whether
// line was recognized as a meta-command at all (false means "evaluate it
// as a script instead").
func runMetaCommand(w io.Writer, it *interp.Interp, line string) (ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != ":info" {
		return false, nil
	}
	if len(fields) < 2 {
		return true, printNameList(w, "commands", mustEval(it, "info commands"))
	}
	switch fields[1] {
	case "vars":
		return true, printNameList(w, "variable", mustEval(it, "info vars"))
	case "procs":
		return true, printNameList(w, "proc", mustEval(it, "info procs"))
	case "commands":
		return true, printNameList(w, "command", mustEval(it, "info commands"))
	case "mem":
		printMem(w, it)
		return true, nil
	default:
		return true, nil
	}
}

// mustEval runs a trusted, engine-internal introspection script (never
// user input) and returns its result, swallowing impossible failures the
// same way the REPL's own meta-commands never need to surface an error
// for a fixed, hand-written script.
func mustEval(it *interp.Interp, src string) *interp.Value {
	v, err := it.Eval(src)
	if err != nil {
		return interp.NewList(nil)
	}
	return v
}
