package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/calclib/formula"
)

const (
	historyFile = ".formula_history"
	prompt      = "==> "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive calculator",
	Long: `repl reads formulas interactively and prints their results.

A line of the form "name = formula" evaluates the right-hand side with the
current bindings and binds the result to name. Type :quit or press Ctrl+D
to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, vars, err := setup()
		if err != nil {
			return err
		}

		home, _ := os.UserHomeDir()
		histPath := filepath.Join(home, historyFile)

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()

		for {
			line, err := ln.Prompt(prompt)
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if err != nil {
				return err
			}
			src := strings.TrimSpace(line)
			if src == "" {
				continue
			}
			if strings.HasPrefix(src, ":") {
				switch strings.ToLower(src) {
				case ":quit", ":q":
					return nil
				case ":vars":
					for name, v := range vars {
						fmt.Printf("%s = %g\n", name, v)
					}
				default:
					fmt.Println("unknown command. Type :quit to exit.")
				}
				continue
			}
			ln.AppendHistory(src)

			name, rhs, assign := splitAssign(src)
			if assign {
				src = rhs
			}
			r, err := reg.Evaluate(src, vars)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			if assign {
				vars[name] = r
			}
			fmt.Printf(verb+"\n", r)
		}
	},
}

// splitAssign reports whether line has the shape "name = formula" with a
// bare identifier on the left.
func splitAssign(line string) (name, rhs string, ok bool) {
	left, right, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(left)
	if name == "" || strings.ContainsAny(name, formula.Operators+"(), \t") {
		return "", "", false
	}
	if r := name[0]; '0' <= r && r <= '9' {
		return "", "", false
	}
	return name, strings.TrimSpace(right), true
}
