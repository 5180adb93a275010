package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/services/progress"
	"github.com/mindhaven/mindhaven-api/internal/validation"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "stats [activities.json]",
		Short: "Compute progress statistics from an activity log file",
		Long:  "Read a JSON array of activity records, validate them, and print the derived progress snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read activity file: %w", err)
			}

			var activities []models.ActivityRecord
			if err := json.Unmarshal(data, &activities); err != nil {
				return fmt.Errorf("failed to parse activity file: %w", err)
			}

			for i, a := range activities {
				if err := validation.ValidateActivityType(string(a.Type)); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
				if err := validation.ValidateMoodRating(a.MoodRating); err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
			}

			ref := time.Now()
			if now != "" {
				ref, err = time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("invalid --now value: %w", err)
				}
			}

			snapshot := progress.ComputeStats(activities, ref)

			out := json.NewEncoder(os.Stdout)
			out.SetIndent("", "  ")
			return out.Encode(snapshot)
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "Reference time in RFC3339 format (default: current time)")

	return cmd
}
