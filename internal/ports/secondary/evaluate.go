package secondary

import "context"

// FeasibilityEvaluator defines the secondary port for contribution
// feasibility evaluation. Evaluate is a pure function of the item's content
// with no side effects.
type FeasibilityEvaluator interface {
	Evaluate(ctx context.Context, item *QueuedContribution) (bool, error)
}

// AcceptAllEvaluator accepts every contribution. Real evaluation criteria
// are problem-specific and injected where available; this is the default.
type AcceptAllEvaluator struct{}

// Evaluate always reports the contribution as feasible.
func (AcceptAllEvaluator) Evaluate(ctx context.Context, item *QueuedContribution) (bool, error) {
	return true, nil
}
