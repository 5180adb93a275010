package commands

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mindhaven/mindhaven-api/internal/models"
	"github.com/mindhaven/mindhaven-api/internal/services/therapy"
	"github.com/mindhaven/mindhaven-api/internal/validation"
)

// NewRespondCmd creates the respond command
func NewRespondCmd() *cobra.Command {
	var therapyType string
	var poolsFile string
	var seed int64

	cmd := &cobra.Command{
		Use:   "respond [message]",
		Short: "Produce a deterministic response",
		Long:  "Run the full selection pipeline (without a generative provider) and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateTherapyType(therapyType); err != nil {
				return err
			}

			pools := therapy.DefaultPools()
			if poolsFile != "" {
				var err error
				pools, err = therapy.LoadPoolsFile(poolsFile)
				if err != nil {
					return fmt.Errorf("failed to load pools file: %w", err)
				}
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			message := strings.Join(args, " ")
			selector := therapy.NewSelector(pools, rand.New(rand.NewSource(seed)))
			classification := therapy.Classify(message)

			fmt.Println(selector.Select(message, models.TherapyType(therapyType), classification))
			return nil
		},
	}

	cmd.Flags().StringVar(&therapyType, "type", string(models.TherapyGeneral), "Therapy type (cbt, dbt, mindfulness, solution_focused, general)")
	cmd.Flags().StringVar(&poolsFile, "pools", "", "Path to a YAML response pools file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the current time)")

	return cmd
}
