// Package repl implements the interactive loop: read a line, interpret
// it against the shared root environment, print the result or a
// diagnostic. Grounded on the teacher's readline+color REPL.
package repl

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/koskinen/sexpr/pkg/interp"
	"github.com/koskinen/sexpr/pkg/types"
)

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	resultColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
)

// Run drives the interactive loop until the user quits, sends EOF, or
// interrupts with ^C on an empty line.
func Run(it *interp.Interp) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptColor.Sprint("sexpr> "),
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "quit" || trimmed == "exit" {
			break
		}

		result, err := it.InterpretString(line)
		if err != nil {
			printError(err)
			continue
		}
		if !types.IsNil(result) {
			resultColor.Println("=> " + result.String())
		}
	}
	return nil
}

func printError(err error) {
	errorColor.Fprintln(colorOutput(), err.Error())
}

func colorOutput() io.Writer { return color.Output }
