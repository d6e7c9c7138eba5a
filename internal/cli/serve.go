package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/hivemind/internal/config"
	"github.com/example/hivemind/internal/wire"
)

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	var listenAddr string
	var workers int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server and feasibility workers",
		Long: `Start the inbound SMS webhook, the admin HTTP API, and the
background feasibility workers.

The workers drain the contribution queue independently of request handling;
a slow worker never delays inbound acknowledgments. SIGINT/SIGTERM stops the
workers between queue pops and drains the HTTP server.

Examples:
  hivemind serve
  hivemind serve --listen :9000 --workers 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.ListenAddr = listenAddr
			}
			if workers > 0 {
				cfg.WorkerCount = workers
			}

			logger := newLogger()

			application, err := wire.Build(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			return runServe(cfg, application, logger.Printf)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "feasibility worker count (overrides config)")

	return cmd
}

func runServe(cfg *config.Config, application *wire.App, logf func(string, ...any)) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Workers are owned by this function's lifetime, not fire-and-forget:
	// cancellation reaches them between queue pops and we wait for them.
	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkerCount; i++ {
		worker := application.NewWorker()
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           application.HTTPServer.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logf("listening on %s", cfg.ListenAddr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		stop()
		wg.Wait()
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logf("http shutdown: %v", err)
	}

	wg.Wait()
	logf("stopped")

	return nil
}
