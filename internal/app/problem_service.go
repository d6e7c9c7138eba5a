package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/hivemind/internal/ports/primary"
	"github.com/example/hivemind/internal/ports/secondary"
)

// ProblemServiceImpl implements the ProblemService interface.
type ProblemServiceImpl struct {
	problems secondary.ProblemRepository
}

// NewProblemService creates a new ProblemService with injected dependencies.
func NewProblemService(problems secondary.ProblemRepository) *ProblemServiceImpl {
	return &ProblemServiceImpl{problems: problems}
}

// RegisterProblem registers a new problem. A duplicate name fails rather
// than overwriting the existing record.
func (s *ProblemServiceImpl) RegisterProblem(ctx context.Context, req primary.RegisterProblemRequest) (*primary.Problem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("problem name is required")
	}

	record := &secondary.ProblemRecord{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.problems.Create(ctx, record); err != nil {
		return nil, err
	}

	return s.recordToProblem(record), nil
}

// GetProblem retrieves a problem by ID.
func (s *ProblemServiceImpl) GetProblem(ctx context.Context, id int64) (*primary.Problem, error) {
	record, err := s.problems.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordToProblem(record), nil
}

// ListProblems lists all registered problems, newest first.
func (s *ProblemServiceImpl) ListProblems(ctx context.Context) ([]*primary.Problem, error) {
	records, err := s.problems.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	problems := make([]*primary.Problem, len(records))
	for i, r := range records {
		problems[i] = s.recordToProblem(r)
	}
	return problems, nil
}

func (s *ProblemServiceImpl) recordToProblem(r *secondary.ProblemRecord) *primary.Problem {
	return &primary.Problem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure ProblemServiceImpl implements the interface.
var _ primary.ProblemService = (*ProblemServiceImpl)(nil)
