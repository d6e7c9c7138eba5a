package twilio

import (
	"context"
	"log"

	"github.com/example/hivemind/internal/ports/secondary"
)

// LogNotifier writes outbound messages to a logger instead of sending them.
// Used when no Twilio credentials are configured, so the pipeline stays
// runnable in development.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the message instead of delivering it.
func (n *LogNotifier) Send(ctx context.Context, to, body string) error {
	n.logger.Printf("notify %s: %s", to, body)
	return nil
}

// Ensure LogNotifier implements the port.
var _ secondary.Notifier = (*LogNotifier)(nil)
