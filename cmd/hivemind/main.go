package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/hivemind/internal/cli"
	"github.com/example/hivemind/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "hivemind",
		Short:   "hivemind - crowdsourcing coordination over SMS",
		Version: version.String(),
		Long: `hivemind coordinates crowdsourced work on hard problems.
Subscribers join by texting in; contributions ("<problem_id>: <idea>") are
clarified, queued durably, evaluated for feasibility, and answered.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.ProblemCmd())
	rootCmd.AddCommand(cli.SubscriberCmd())
	rootCmd.AddCommand(cli.BroadcastCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
