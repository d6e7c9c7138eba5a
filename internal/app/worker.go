package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/hivemind/internal/ports/secondary"
)

// Worker result notifications, sent to the contribution's origin identity.
const (
	replyAccepted   = "Accepted and credited."
	replyRefinement = "Needs refinement."
)

// defaultPopTimeout bounds each blocking pop so the worker can observe
// shutdown between attempts.
const defaultPopTimeout = 5 * time.Second

// FeasibilityWorker drains the contribution queue, evaluates each item, and
// notifies the sender of the outcome. It is decoupled from request handling:
// a slow worker never blocks inbound acknowledgment.
type FeasibilityWorker struct {
	queue      secondary.ContributionQueue
	evaluator  secondary.FeasibilityEvaluator
	notifier   secondary.Notifier
	logger     *log.Logger
	popTimeout time.Duration
}

// NewFeasibilityWorker creates a worker with injected dependencies.
func NewFeasibilityWorker(
	queue secondary.ContributionQueue,
	evaluator secondary.FeasibilityEvaluator,
	notifier secondary.Notifier,
	logger *log.Logger,
) *FeasibilityWorker {
	return &FeasibilityWorker{
		queue:      queue,
		evaluator:  evaluator,
		notifier:   notifier,
		logger:     logger,
		popTimeout: defaultPopTimeout,
	}
}

// Run loops until ctx is cancelled. Multiple workers may run against the
// same queue: the queue's atomic pop already guarantees each item goes to at
// most one of them, so no extra locking is needed here.
//
// Failure policy: a pop timeout is the idle path, not an error; a malformed
// item is logged and discarded; a notification failure is logged and the
// loop continues (no re-enqueue).
func (w *FeasibilityWorker) Run(ctx context.Context) {
	w.logger.Printf("feasibility worker started")

	for {
		item, ok, err := w.queue.PopBlocking(ctx, w.popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Printf("feasibility worker stopping: %v", ctx.Err())
				return
			}
			w.logger.Printf("queue pop failed: %v", err)
			// Pause before retrying so a down backend is not hammered.
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.popTimeout):
			}
			continue
		}
		if !ok {
			// Idle timeout; check for shutdown and poll again.
			if ctx.Err() != nil {
				w.logger.Printf("feasibility worker stopping: %v", ctx.Err())
				return
			}
			continue
		}

		w.process(ctx, item)
	}
}

func (w *FeasibilityWorker) process(ctx context.Context, item *secondary.QueuedContribution) {
	if err := validateItem(item); err != nil {
		w.logger.Printf("discarding queue item %d: %v", item.ID, err)
		return
	}

	feasible, err := w.evaluator.Evaluate(ctx, item)
	if err != nil {
		w.logger.Printf("evaluation failed for item %d: %v", item.ID, err)
		return
	}

	reply := replyRefinement
	if feasible {
		reply = replyAccepted
	}

	if err := w.notifier.Send(ctx, item.Identity, reply); err != nil {
		w.logger.Printf("result notification to %s failed: %v", item.Identity, err)
	}
}

// validateItem rejects items the pipeline cannot act on. The pop already
// removed them from the queue, so rejection means discard.
func validateItem(item *secondary.QueuedContribution) error {
	if item.Identity == "" {
		return fmt.Errorf("missing origin identity: %w", secondary.ErrMalformedQueueItem)
	}
	return nil
}
