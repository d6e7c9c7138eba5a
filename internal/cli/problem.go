package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hivemind/internal/ports/primary"
)

// ProblemCmd returns the problem command.
func ProblemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Manage the problem catalog",
	}

	cmd.AddCommand(problemAddCmd())
	cmd.AddCommand(problemListCmd())

	return cmd
}

func problemAddCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new problem",
		Long: `Register a problem subscribers can contribute against.

Names are unique; registering an existing name fails.

Examples:
  hivemind problem add "P vs NP" --description "Is P = NP?"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(newLogger())
			if err != nil {
				return err
			}
			defer application.Close()

			problem, err := application.ProblemService.RegisterProblem(context.Background(), primary.RegisterProblemRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Registered problem %s (id %d)\n", color.New(color.FgGreen).Sprint(problem.Name), problem.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "problem description")

	return cmd
}

func problemListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(newLogger())
			if err != nil {
				return err
			}
			defer application.Close()

			problems, err := application.ProblemService.ListProblems(context.Background())
			if err != nil {
				return err
			}

			if len(problems) == 0 {
				fmt.Println("No problems registered.")
				return nil
			}

			for _, p := range problems {
				marker := ""
				if !p.Active {
					marker = color.New(color.FgYellow).Sprint(" [inactive]")
				}
				fmt.Printf("%4d  %s%s\n", p.ID, p.Name, marker)
				if p.Description != "" {
					fmt.Printf("      %s\n", p.Description)
				}
			}
			return nil
		},
	}
}
