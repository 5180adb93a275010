package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindhaven/mindhaven-api/cmd/mindctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "mindctl",
		Short: "Operations tool for the MindHaven API",
		Long:  "CLI tool for exercising the response engine and inspecting configuration",
	}

	rootCmd.AddCommand(commands.NewClassifyCmd())
	rootCmd.AddCommand(commands.NewRespondCmd())
	rootCmd.AddCommand(commands.NewPoolsCmd())
	rootCmd.AddCommand(commands.NewStatsCmd())
	rootCmd.AddCommand(commands.NewTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
