// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hivemind/internal/ports/secondary"
)

// SubscriberRepository implements secondary.SubscriberRepository with SQLite.
type SubscriberRepository struct {
	db *sql.DB
}

// NewSubscriberRepository creates a new SQLite subscriber repository.
func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// FindByIdentity retrieves a subscriber by contact identity.
// Returns (nil, nil) when the identity has never been seen.
func (r *SubscriberRepository) FindByIdentity(ctx context.Context, identity string) (*secondary.SubscriberRecord, error) {
	record, err := r.get(ctx, identity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find subscriber: %w (%w)", err, secondary.ErrStorageUnavailable)
	}
	return record, nil
}

// CreateIfAbsent inserts a subscriber record for identity if none exists.
// The insert relies on the primary key for atomicity: under concurrent calls
// for the same identity exactly one insert takes effect, and RowsAffected
// tells each caller whether it won.
func (r *SubscriberRepository) CreateIfAbsent(ctx context.Context, identity string) (*secondary.SubscriberRecord, bool, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO subscribers (phone, active) VALUES (?, 1) ON CONFLICT(phone) DO NOTHING",
		identity,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create subscriber: %w (%w)", err, secondary.ErrStorageUnavailable)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read insert result: %w (%w)", err, secondary.ErrStorageUnavailable)
	}

	record, err := r.get(ctx, identity)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch subscriber after create: %w (%w)", err, secondary.ErrStorageUnavailable)
	}

	return record, affected == 1, nil
}

// ListActive retrieves all active subscribers, oldest first.
func (r *SubscriberRepository) ListActive(ctx context.Context) ([]*secondary.SubscriberRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT phone, active, created_at FROM subscribers WHERE active = 1 ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w (%w)", err, secondary.ErrStorageUnavailable)
	}
	defer rows.Close()

	var subs []*secondary.SubscriberRecord
	for rows.Next() {
		record, err := scanSubscriber(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, record)
	}

	return subs, rows.Err()
}

func (r *SubscriberRepository) get(ctx context.Context, identity string) (*secondary.SubscriberRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT phone, active, created_at FROM subscribers WHERE phone = ?",
		identity,
	)
	return scanSubscriber(row.Scan)
}

func scanSubscriber(scan func(...any) error) (*secondary.SubscriberRecord, error) {
	var (
		activeInt int
		createdAt time.Time
	)

	record := &secondary.SubscriberRecord{}
	if err := scan(&record.Identity, &activeInt, &createdAt); err != nil {
		return nil, err
	}

	record.Active = activeInt == 1
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure SubscriberRepository implements the interface.
var _ secondary.SubscriberRepository = (*SubscriberRepository)(nil)
