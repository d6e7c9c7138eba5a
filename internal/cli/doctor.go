package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/hivemind/internal/db"
)

// Check statuses.
const (
	statusOK   = "ok"
	statusWarn = "warn"
	statusFail = "fail"
)

// CheckResult represents the outcome of a single check.
type CheckResult struct {
	Name    string
	Status  string
	Details string // Only shown if Status != ok
}

// DoctorCmd returns the doctor command for environment validation.
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate hivemind configuration and storage",
		Long: `Health check for a hivemind deployment.

Validates:
- Config file presence and parseability
- Database file reachability and schema
- Clarifier and Twilio credential configuration (warnings: the pipeline
  degrades gracefully without them)

Examples:
  hivemind doctor          # Run full health check
  hivemind doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{}

			cfg, err := loadConfig()
			if err != nil {
				results = append(results, CheckResult{Name: "config", Status: statusFail, Details: err.Error()})
			} else {
				results = append(results, CheckResult{Name: "config", Status: statusOK})
				results = append(results, checkDatabase(cfg.DBPath))
				results = append(results, checkCredential("clarifier API key (OPENAI_API_KEY)", cfg.ClarifierAPIKey,
					"clarification will fall back to raw text"))
				results = append(results, checkCredential("twilio credentials (TWILIO_*)", cfg.TwilioAccountSID,
					"notifications will be log-only"))
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == statusFail {
					hasErrors = true
				}
				if quiet {
					continue
				}
				var mark string
				switch r.Status {
				case statusOK:
					mark = color.New(color.FgGreen).Sprint("✓")
				case statusWarn:
					mark = color.New(color.FgYellow).Sprint("⚠")
				default:
					mark = color.New(color.FgRed).Sprint("✗")
				}
				fmt.Printf("%s %s\n", mark, r.Name)
				if r.Status != statusOK && r.Details != "" {
					fmt.Printf("  %s\n", r.Details)
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "exit code only, no output")

	return cmd
}

func checkDatabase(path string) CheckResult {
	database, err := db.Open(path)
	if err != nil {
		return CheckResult{Name: "database", Status: statusFail, Details: err.Error()}
	}
	defer database.Close()

	if err := database.Ping(); err != nil {
		return CheckResult{Name: "database", Status: statusFail, Details: err.Error()}
	}
	return CheckResult{Name: "database", Status: statusOK}
}

func checkCredential(name, value, consequence string) CheckResult {
	if value == "" {
		return CheckResult{Name: name, Status: statusWarn, Details: "not set; " + consequence}
	}
	return CheckResult{Name: name, Status: statusOK}
}
