package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/davidroman0O/gohooks"
	"github.com/davidroman0O/gohooks/internal/todo"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string
}

// NewRootCommand creates the root command of the todo CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A todo list rendered with gohooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log renders to stderr")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "YAML file with seed, initial items and filter")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewScriptCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

// newApp builds the application from the global flags.
func newApp(ctx context.Context, opts *RootOptions, stderr io.Writer) (*todo.App, error) {
	cfg := todo.DefaultConfig()
	if opts.Config != "" {
		loaded, err := todo.LoadConfig(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	logger := NewConsoleLogger(stderr, opts.Verbose)

	middleware := []gohooks.Middleware{}
	if opts.Verbose {
		middleware = append(middleware, gohooks.LoggingMiddleware())
	}

	app := todo.New(cfg,
		gohooks.WithLogger(logger),
		gohooks.WithMiddleware(middleware...),
	)
	if _, err := app.Render(ctx); err != nil {
		return nil, fmt.Errorf("first render failed: %w", err)
	}
	return app, nil
}
