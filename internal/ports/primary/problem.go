package primary

import "context"

// ProblemService defines the primary port for problem catalog operations.
type ProblemService interface {
	// RegisterProblem registers a new problem. Names are unique; a duplicate
	// name fails rather than overwriting.
	RegisterProblem(ctx context.Context, req RegisterProblemRequest) (*Problem, error)

	// GetProblem retrieves a problem by ID.
	GetProblem(ctx context.Context, id int64) (*Problem, error)

	// ListProblems lists all registered problems, newest first.
	ListProblems(ctx context.Context) ([]*Problem, error)
}

// RegisterProblemRequest contains parameters for registering a problem.
type RegisterProblemRequest struct {
	Name        string
	Description string
}

// Problem represents a problem entity at the port boundary.
type Problem struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   string
}
