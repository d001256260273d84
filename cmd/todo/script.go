package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewScriptCommand creates the command that replays a file of commands.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "script <file>",
		Short: "Run one command per line from a file and print the final list",
		Long: `Run one command per line from a file and print the final list.

Blank lines and lines starting with # are skipped. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			scanner := bufio.NewScanner(in)
			lineNo := 0
			for scanner.Scan() {
				lineNo++
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				if _, err := app.Exec(cmd.Context(), line); err != nil {
					if !keepGoing {
						return fmt.Errorf("line %d %q: %w", lineNo, line, err)
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "line %d %q: %v\n", lineNo, line, err)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), app.View())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "report failing lines and continue")
	return cmd
}
