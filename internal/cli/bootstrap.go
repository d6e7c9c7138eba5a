// Package cli provides CLI commands for the hivemind application.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/example/hivemind/internal/config"
	"github.com/example/hivemind/internal/wire"
)

// loadConfig loads .env (if present) and the config file from the current
// working directory.
func loadConfig() (*config.Config, error) {
	// Secrets come from the environment; a local .env is a convenience.
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return nil, fmt.Errorf("no config found, run 'hivemind init' first: %w", err)
	}

	return cfg, nil
}

// buildApp wires the application for a one-shot CLI command.
// Callers must Close() the returned app.
func buildApp(logger *log.Logger) (*wire.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	application, err := wire.Build(cfg, logger)
	if err != nil {
		return nil, err
	}

	return application, nil
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "hivemind ", log.LstdFlags)
}
