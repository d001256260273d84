package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidroman0O/gohooks/store"
)

type inspection struct {
	Runtime string           `json:"runtime"`
	Renders uint64           `json:"renders"`
	Stats   store.Stats      `json:"stats"`
	Types   []store.TypeInfo `json:"types"`
}

// NewInspectCommand creates the command that dumps the store after a render.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var schemas bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Render the list once and print what its store holds as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			rt := app.Runtime()
			types := rt.Store().Types()
			if !schemas {
				for i := range types {
					types[i].Schema = nil
				}
			}

			data, err := json.MarshalIndent(inspection{
				Runtime: rt.ID(),
				Renders: rt.Renders(),
				Stats:   rt.Store().Stats(),
				Types:   types,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode inspection: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&schemas, "schemas", false, "include a JSON schema per stored type")
	return cmd
}
