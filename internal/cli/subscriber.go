package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// SubscriberCmd returns the subscriber command.
func SubscriberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriber",
		Short: "Inspect subscribers",
	}

	cmd.AddCommand(subscriberListCmd())

	return cmd
}

func subscriberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active subscribers",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(newLogger())
			if err != nil {
				return err
			}
			defer application.Close()

			subs, err := application.BroadcastService.ListSubscribers(context.Background())
			if err != nil {
				return err
			}

			if len(subs) == 0 {
				fmt.Println("No active subscribers.")
				return nil
			}

			for _, s := range subs {
				fmt.Printf("%s  (since %s)\n", s.Identity, s.CreatedAt)
			}
			return nil
		},
	}
}
