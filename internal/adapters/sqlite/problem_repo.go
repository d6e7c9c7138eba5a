package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/example/hivemind/internal/ports/secondary"
)

// ProblemRepository implements secondary.ProblemRepository with SQLite.
type ProblemRepository struct {
	db *sql.DB
}

// NewProblemRepository creates a new SQLite problem repository.
func NewProblemRepository(db *sql.DB) *ProblemRepository {
	return &ProblemRepository{db: db}
}

// Create persists a new problem and fills in its assigned ID.
// Name uniqueness is enforced by the schema; a duplicate fails with
// secondary.ErrDuplicateProblemName instead of overwriting.
func (r *ProblemRepository) Create(ctx context.Context, problem *secondary.ProblemRecord) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO problems (name, description, active) VALUES (?, ?, 1)",
		problem.Name, problem.Description,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("problem %q: %w", problem.Name, secondary.ErrDuplicateProblemName)
		}
		return fmt.Errorf("failed to create problem: %w (%w)", err, secondary.ErrStorageUnavailable)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read problem id: %w", err)
	}

	problem.ID = id
	problem.Active = true

	return nil
}

// GetByID retrieves a problem by its ID.
func (r *ProblemRepository) GetByID(ctx context.Context, id int64) (*secondary.ProblemRecord, error) {
	record, err := scanProblem(r.db.QueryRowContext(ctx,
		"SELECT id, name, description, active, created_at FROM problems WHERE id = ?",
		id,
	).Scan)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("problem %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get problem: %w (%w)", err, secondary.ErrStorageUnavailable)
	}

	return record, nil
}

// List retrieves all problems, newest first.
func (r *ProblemRepository) List(ctx context.Context) ([]*secondary.ProblemRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, active, created_at FROM problems ORDER BY id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w (%w)", err, secondary.ErrStorageUnavailable)
	}
	defer rows.Close()

	var problems []*secondary.ProblemRecord
	for rows.Next() {
		record, err := scanProblem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		problems = append(problems, record)
	}

	return problems, rows.Err()
}

func scanProblem(scan func(...any) error) (*secondary.ProblemRecord, error) {
	var (
		description sql.NullString
		activeInt   int
		createdAt   time.Time
	)

	record := &secondary.ProblemRecord{}
	if err := scan(&record.ID, &record.Name, &description, &activeInt, &createdAt); err != nil {
		return nil, err
	}

	record.Description = description.String
	record.Active = activeInt == 1
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure ProblemRepository implements the interface.
var _ secondary.ProblemRepository = (*ProblemRepository)(nil)
