package secondary

import "context"

// Notifier defines the secondary port for outbound notifications.
// Delivery is best-effort: callers log failures and continue; a failed send
// is never surfaced to the original webhook caller.
type Notifier interface {
	// Send delivers body to the contact identity to.
	Send(ctx context.Context, to, body string) error
}
