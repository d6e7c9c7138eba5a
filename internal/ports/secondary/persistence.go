// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrStorageUnavailable indicates the persistence backend could not be
// reached or could not commit. Callers must not assume anything was written.
var ErrStorageUnavailable = errors.New("storage unavailable")

// SubscriberRepository defines the secondary port for subscriber persistence.
type SubscriberRepository interface {
	// FindByIdentity retrieves a subscriber by contact identity.
	// Returns (nil, nil) when the identity has never been seen.
	FindByIdentity(ctx context.Context, identity string) (*SubscriberRecord, error)

	// CreateIfAbsent inserts a subscriber record for identity if none exists.
	// It is atomic with respect to concurrent calls for the same identity:
	// exactly one caller observes created=true, the rest observe the winner's
	// record with created=false.
	CreateIfAbsent(ctx context.Context, identity string) (*SubscriberRecord, bool, error)

	// ListActive retrieves all active subscribers.
	ListActive(ctx context.Context) ([]*SubscriberRecord, error)
}

// SubscriberRecord represents a subscriber as stored in persistence.
type SubscriberRecord struct {
	Identity  string
	Active    bool
	CreatedAt string
}

// ProblemRepository defines the secondary port for problem persistence.
type ProblemRepository interface {
	// Create persists a new problem and fills in its assigned ID.
	// Fails if the name is already taken; nothing is overwritten.
	Create(ctx context.Context, problem *ProblemRecord) error

	// GetByID retrieves a problem by its ID.
	GetByID(ctx context.Context, id int64) (*ProblemRecord, error)

	// List retrieves all problems, newest first.
	List(ctx context.Context) ([]*ProblemRecord, error)
}

// ErrDuplicateProblemName indicates a Create collided with an existing name.
var ErrDuplicateProblemName = errors.New("problem name already exists")

// ErrMalformedQueueItem indicates a popped item failed validation or
// decoding. The worker logs and discards such items; a single bad item must
// never halt the loop.
var ErrMalformedQueueItem = errors.New("malformed queue item")

// ProblemRecord represents a problem as stored in persistence.
type ProblemRecord struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   string
}

// ContributionQueue defines the secondary port for the durable work queue.
// Push/pop are atomic per item: no two consumers ever receive the same item.
type ContributionQueue interface {
	// Push appends an item to the tail. The item is durable once Push returns.
	Push(ctx context.Context, item *QueuedContribution) error

	// PopBlocking removes and returns the head item. If the queue stays empty
	// for the full timeout it returns (nil, false, nil). The pop is
	// destructive: the item is gone from the queue the moment it is returned.
	PopBlocking(ctx context.Context, timeout time.Duration) (*QueuedContribution, bool, error)

	// Len returns the number of items waiting in the queue.
	Len(ctx context.Context) (int, error)
}

// QueuedContribution is the unit flowing through the work queue.
// Clarified records whether the body went through the clarifier or degraded
// to the sender's raw text.
type QueuedContribution struct {
	ID         int64
	Identity   string
	ProblemRef string
	Body       string
	Clarified  bool
	EnqueuedAt string
}
