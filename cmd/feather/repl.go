package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/feather-lang/feather/interp"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	replErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// runREPL drives an interactive read-eval-print loop over it, using
// peterh/liner for line editing/history and lipgloss for prompt/result/
// error styling (SPEC_FULL.md §B). Continuation lines are accumulated
// until it.CheckComplete reports ParseOK, mirroring the teacher's own
// REPL accumulating scanner lines until a full statement parses.
func runREPL(it *interp.Interp, cfg config, out io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var pending strings.Builder
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = "feather> "
	}
	contPrompt := strings.Repeat(" ", len(prompt)-2) + "> "

	for {
		p := prompt
		if pending.Len() > 0 {
			p = contPrompt
		}
		input, err := line.Prompt(promptStyle.Render(p))
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		if pending.Len() == 0 && strings.HasPrefix(strings.TrimSpace(input), ":") {
			if strings.TrimSpace(input) == ":quit" || strings.TrimSpace(input) == ":exit" {
				return nil
			}
			if ok, err := runMetaCommand(out, it, strings.TrimSpace(input)); ok {
				if err != nil {
					fmt.Fprintln(out, replErrStyle.Render(err.Error()))
				}
				continue
			}
		}

		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(input)

		status := it.CheckComplete(pending.String())
		if status.Status == interp.ParseIncomplete {
			continue
		}

		src := pending.String()
		pending.Reset()

		v, err := it.Eval(src)
		if err != nil {
			fmt.Fprintln(out, replErrStyle.Render(err.Error()))
			continue
		}
		fmt.Fprintln(out, resultStyle.Render(v.String()))
	}
}
