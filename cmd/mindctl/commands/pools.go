package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mindhaven/mindhaven-api/internal/services/therapy"
)

// NewPoolsCmd creates the pools command group
func NewPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Inspect response pools",
		Long:  "Validate and export the deterministic response pools",
	}

	cmd.AddCommand(newPoolsValidateCmd())
	cmd.AddCommand(newPoolsExportCmd())

	return cmd
}

func newPoolsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a response pools file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pools, err := therapy.LoadPoolsFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load pools file: %w", err)
			}
			if err := pools.Validate(); err != nil {
				return fmt.Errorf("pools file is invalid: %w", err)
			}
			fmt.Printf("%s is valid\n", args[0])
			return nil
		},
	}
}

func newPoolsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the built-in pools as YAML",
		Long:  "Print the built-in response pools as YAML, as a starting point for a custom pools file",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer func() {
				if err := enc.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to flush encoder: %v\n", err)
				}
			}()
			return enc.Encode(therapy.DefaultPools())
		},
	}
}
