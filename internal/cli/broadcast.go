package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/hivemind/internal/ports/primary"
)

// BroadcastCmd returns the broadcast command.
func BroadcastCmd() *cobra.Command {
	var problemID int64

	cmd := &cobra.Command{
		Use:   "broadcast <prompt>",
		Short: "Send a task prompt to all active subscribers",
		Long: `Send "Problem <id>: <prompt>" to every active subscriber.

Per-recipient delivery failures are logged and counted; the broadcast
continues past them.

Examples:
  hivemind broadcast "Find a reduction from 3-SAT" --problem 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(newLogger())
			if err != nil {
				return err
			}
			defer application.Close()

			resp, err := application.BroadcastService.BroadcastTask(context.Background(), primary.BroadcastTaskRequest{
				ProblemID: problemID,
				Prompt:    args[0],
			})
			if err != nil {
				return err
			}

			fmt.Printf("Broadcast sent to %d subscribers (%d failed)\n", resp.Sent, resp.Failed)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&problemID, "problem", "p", 0, "problem ID (required)")
	cmd.MarkFlagRequired("problem")

	return cmd
}
