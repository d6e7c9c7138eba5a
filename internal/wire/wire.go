// Package wire constructs the application object graph. Every collaborator
// is built exactly once at startup and handed to its dependents through
// constructors; nothing reaches into ambient process state.
package wire

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/example/hivemind/internal/adapters/httpapi"
	"github.com/example/hivemind/internal/adapters/openai"
	"github.com/example/hivemind/internal/adapters/sqlite"
	"github.com/example/hivemind/internal/adapters/twilio"
	"github.com/example/hivemind/internal/app"
	"github.com/example/hivemind/internal/config"
	"github.com/example/hivemind/internal/db"
	"github.com/example/hivemind/internal/ports/secondary"
)

// App holds the wired application.
type App struct {
	DB *sql.DB

	IntakeService    *app.IntakeServiceImpl
	ProblemService   *app.ProblemServiceImpl
	BroadcastService *app.BroadcastServiceImpl

	Queue    secondary.ContributionQueue
	Notifier secondary.Notifier

	HTTPServer *httpapi.Server

	cfg    *config.Config
	logger *log.Logger
}

// Build wires the full object graph from configuration.
func Build(cfg *config.Config, logger *log.Logger) (*App, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	subscriberRepo := sqlite.NewSubscriberRepository(database)
	problemRepo := sqlite.NewProblemRepository(database)
	queue := sqlite.NewContributionQueue(database)

	clarifier := openai.NewClarifier(cfg.ClarifierBaseURL, cfg.ClarifierModel, cfg.ClarifierAPIKey, cfg.ClarifyTimeout())
	notifier := buildNotifier(cfg, logger)

	intakeService := app.NewIntakeService(subscriberRepo, queue, clarifier, notifier, logger)
	problemService := app.NewProblemService(problemRepo)
	broadcastService := app.NewBroadcastService(subscriberRepo, problemRepo, notifier, logger)

	httpServer := httpapi.NewServer(intakeService, problemService, broadcastService, logger)

	return &App{
		DB:               database,
		IntakeService:    intakeService,
		ProblemService:   problemService,
		BroadcastService: broadcastService,
		Queue:            queue,
		Notifier:         notifier,
		HTTPServer:       httpServer,
		cfg:              cfg,
		logger:           logger,
	}, nil
}

// NewWorker creates one feasibility worker against the app's queue. Workers
// share nothing beyond the queue itself; the queue's atomic pop keeps them
// from ever processing the same item.
func (a *App) NewWorker() *app.FeasibilityWorker {
	return app.NewFeasibilityWorker(a.Queue, secondary.AcceptAllEvaluator{}, a.Notifier, a.logger)
}

// Close releases held resources.
func (a *App) Close() error {
	return a.DB.Close()
}

// buildNotifier picks the Twilio notifier when credentials are configured
// and falls back to the log-only notifier otherwise.
func buildNotifier(cfg *config.Config, logger *log.Logger) secondary.Notifier {
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		return twilio.NewNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}
	logger.Printf("twilio credentials not configured, notifications will be logged only")
	return twilio.NewLogNotifier(logger)
}
