package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hivemind/internal/ports/secondary"
)

// defaultPollInterval is the idle backoff between empty-pop attempts.
// SQLite has no blocking-read primitive, so PopBlocking polls; the backoff
// keeps an idle worker from saturating the database.
const defaultPollInterval = 50 * time.Millisecond

// ContributionQueue implements secondary.ContributionQueue with SQLite.
// FIFO order comes from the AUTOINCREMENT id; pop is a single
// DELETE ... RETURNING on the minimum id, so an item is only ever handed to
// one consumer.
type ContributionQueue struct {
	db           *sql.DB
	pollInterval time.Duration
}

// NewContributionQueue creates a new SQLite-backed contribution queue.
func NewContributionQueue(db *sql.DB) *ContributionQueue {
	return &ContributionQueue{db: db, pollInterval: defaultPollInterval}
}

// Push appends an item to the tail. The row is committed before Push returns.
func (q *ContributionQueue) Push(ctx context.Context, item *secondary.QueuedContribution) error {
	clarified := 0
	if item.Clarified {
		clarified = 1
	}

	res, err := q.db.ExecContext(ctx,
		"INSERT INTO contribution_queue (phone, problem_ref, body, clarified) VALUES (?, ?, ?, ?)",
		item.Identity, item.ProblemRef, item.Body, clarified,
	)
	if err != nil {
		return fmt.Errorf("failed to push contribution: %w (%w)", err, secondary.ErrStorageUnavailable)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read queue id: %w", err)
	}
	item.ID = id

	return nil
}

// PopBlocking removes and returns the head item, polling with a bounded idle
// backoff until an item arrives, the timeout elapses, or ctx is cancelled.
// A timeout returns (nil, false, nil): it is the worker's idle path, not an
// error.
func (q *ContributionQueue) PopBlocking(ctx context.Context, timeout time.Duration) (*secondary.QueuedContribution, bool, error) {
	deadline := time.Now().Add(timeout)

	for {
		item, ok, err := q.tryPop(ctx)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return item, true, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false, nil
		}

		wait := q.pollInterval
		if wait > remaining {
			wait = remaining
		}

		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// tryPop atomically removes and returns the head item, if any.
func (q *ContributionQueue) tryPop(ctx context.Context) (*secondary.QueuedContribution, bool, error) {
	var (
		clarifiedInt int
		enqueuedAt   time.Time
	)

	item := &secondary.QueuedContribution{}
	err := q.db.QueryRowContext(ctx, `
		DELETE FROM contribution_queue
		WHERE id = (SELECT id FROM contribution_queue ORDER BY id LIMIT 1)
		RETURNING id, phone, problem_ref, body, clarified, enqueued_at`,
	).Scan(&item.ID, &item.Identity, &item.ProblemRef, &item.Body, &clarifiedInt, &enqueuedAt)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to pop contribution: %w (%w)", err, secondary.ErrStorageUnavailable)
	}

	item.Clarified = clarifiedInt == 1
	item.EnqueuedAt = enqueuedAt.Format(time.RFC3339)

	return item, true, nil
}

// Len returns the number of items waiting in the queue.
func (q *ContributionQueue) Len(ctx context.Context) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contribution_queue").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count queue: %w (%w)", err, secondary.ErrStorageUnavailable)
	}
	return n, nil
}

// Ensure ContributionQueue implements the interface.
var _ secondary.ContributionQueue = (*ContributionQueue)(nil)
