package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindhaven/mindhaven-api/internal/services/therapy"
)

// NewClassifyCmd creates the classify command
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [message]",
		Short: "Classify a message",
		Long:  "Run the lexical classifier over a message and print what it detects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			c := therapy.Classify(message)

			fmt.Printf("Message: %q\n", message)
			fmt.Printf("Crisis:   %v\n", c.IsCrisis)
			fmt.Printf("Greeting: %v\n", c.IsGreeting)
			fmt.Printf("Casual:   %v\n", c.IsCasual)

			emotions := make([]string, 0, len(c.Emotions))
			for _, e := range c.Emotions {
				emotions = append(emotions, string(e))
			}
			fmt.Printf("Emotions: %s\n", strings.Join(emotions, ", "))
			fmt.Printf("Dominant: %s\n", c.Dominant())
			return nil
		},
	}

	return cmd
}
