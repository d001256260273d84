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

	"github.com/davidroman0O/gohooks/internal/todo"
)

var commands = []string{"type", "add", "toggle", "remove", "up", "down", "filter", "clear", "help", "exit", "quit"}

// NewRunCommand creates the interactive command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Edit the list interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runREPL(cmd, app)
		},
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".todo_history")
}

func runREPL(cmd *cobra.Command, app *todo.App) error {
	out := cmd.OutOrStdout()

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string
		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(prefix)) {
				matches = append(matches, c)
			}
		}
		return matches
	})

	if f, err := os.Open(historyFile()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if path := historyFile(); path != "" {
			if f, err := os.Create(path); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}
	}()

	fmt.Fprint(out, app.View())
	fmt.Fprintln(out, "Type 'help' for available commands.")

	for {
		input, err := line.Prompt("todo> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "Bye!")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			fmt.Fprintln(out, "Bye!")
			return nil
		case "help", "?":
			printHelp(out)
			continue
		}

		view, err := app.Exec(cmd.Context(), input)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		fmt.Fprint(out, view)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  type <text>               set the input buffer
  add [text]                add text, or the input buffer
  toggle <n>                mark item n done or not done
  remove <n>                delete item n
  up <n>, down <n>          move item n
  filter <all|active|done>  choose which items are shown
  clear                     delete every done item
  help                      show this help
  exit                      leave
`)
}
