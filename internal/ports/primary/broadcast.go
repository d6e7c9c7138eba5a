package primary

import "context"

// BroadcastService defines the primary port for task broadcasts.
type BroadcastService interface {
	// BroadcastTask sends a prompt for a problem to every active subscriber.
	// Per-recipient delivery failures are logged and counted; the broadcast
	// continues past them.
	BroadcastTask(ctx context.Context, req BroadcastTaskRequest) (*BroadcastTaskResponse, error)

	// ListSubscribers lists all active subscribers.
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)
}

// BroadcastTaskRequest contains parameters for a task broadcast.
type BroadcastTaskRequest struct {
	ProblemID int64
	Prompt    string
}

// BroadcastTaskResponse reports delivery counts for a broadcast.
type BroadcastTaskResponse struct {
	Sent   int
	Failed int
}

// Subscriber represents a subscriber entity at the port boundary.
type Subscriber struct {
	Identity  string
	Active    bool
	CreatedAt string
}
