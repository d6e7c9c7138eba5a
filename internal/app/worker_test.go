package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/hivemind/internal/ports/secondary"
)

func runWorker(t *testing.T, w *FeasibilityWorker) (cancel func()) {
	t.Helper()

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	return func() {
		stop()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop after cancellation")
		}
	}
}

func waitForMessages(t *testing.T, notifier *mockNotifier, want int) []sentMessage {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msgs := notifier.messages(); len(msgs) >= want {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d notifications, got %d", want, len(notifier.messages()))
	return nil
}

func TestFeasibilityWorker_AcceptsItem(t *testing.T) {
	queue := newMockQueue()
	notifier := &mockNotifier{}
	worker := NewFeasibilityWorker(queue, &mockEvaluator{feasible: true}, notifier, discardLogger())
	worker.popTimeout = 20 * time.Millisecond

	item := &secondary.QueuedContribution{Identity: "+15550001111", ProblemRef: "42", Body: "idea"}
	if err := queue.Push(context.Background(), item); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	cancel := runWorker(t, worker)
	defer cancel()

	msgs := waitForMessages(t, notifier, 1)
	if msgs[0].to != "+15550001111" {
		t.Errorf("expected notification to origin identity, got %q", msgs[0].to)
	}
	if msgs[0].body != replyAccepted {
		t.Errorf("expected %q, got %q", replyAccepted, msgs[0].body)
	}
}

func TestFeasibilityWorker_RefinementOutcome(t *testing.T) {
	queue := newMockQueue()
	notifier := &mockNotifier{}
	worker := NewFeasibilityWorker(queue, &mockEvaluator{feasible: false}, notifier, discardLogger())
	worker.popTimeout = 20 * time.Millisecond

	if err := queue.Push(context.Background(), &secondary.QueuedContribution{Identity: "+15550001111", ProblemRef: "1", Body: "x"}); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	cancel := runWorker(t, worker)
	defer cancel()

	msgs := waitForMessages(t, notifier, 1)
	if msgs[0].body != replyRefinement {
		t.Errorf("expected %q, got %q", replyRefinement, msgs[0].body)
	}
}

// A malformed item is discarded; items behind it are still processed.
func TestFeasibilityWorker_MalformedItemDiscarded(t *testing.T) {
	queue := newMockQueue()
	notifier := &mockNotifier{}
	worker := NewFeasibilityWorker(queue, &mockEvaluator{feasible: true}, notifier, discardLogger())
	worker.popTimeout = 20 * time.Millisecond

	ctx := context.Background()
	if err := queue.Push(ctx, &secondary.QueuedContribution{Identity: "", ProblemRef: "1", Body: "bad"}); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if err := queue.Push(ctx, &secondary.QueuedContribution{Identity: "+15550002222", ProblemRef: "1", Body: "good"}); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	cancel := runWorker(t, worker)
	defer cancel()

	msgs := waitForMessages(t, notifier, 1)
	if msgs[0].to != "+15550002222" {
		t.Errorf("expected only the well-formed item to notify, got %+v", msgs)
	}
}

// Notification failure is logged, not retried; the loop keeps draining.
func TestFeasibilityWorker_NotifyFailureContinues(t *testing.T) {
	queue := newMockQueue()
	notifier := &mockNotifier{sendErr: errStorageDown}
	worker := NewFeasibilityWorker(queue, &mockEvaluator{feasible: true}, notifier, discardLogger())
	worker.popTimeout = 20 * time.Millisecond

	ctx := context.Background()
	for _, id := range []string{"+15550001111", "+15550002222"} {
		if err := queue.Push(ctx, &secondary.QueuedContribution{Identity: id, ProblemRef: "1", Body: "x"}); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}

	cancel := runWorker(t, worker)
	defer cancel()

	// Both sends are attempted even though each fails.
	waitForMessages(t, notifier, 2)

	if n, _ := queue.Len(ctx); n != 0 {
		t.Errorf("expected queue drained without re-enqueue, got %d items", n)
	}
}

func TestFeasibilityWorker_StopsOnCancel(t *testing.T) {
	queue := newMockQueue()
	worker := NewFeasibilityWorker(queue, &mockEvaluator{feasible: true}, &mockNotifier{}, discardLogger())
	worker.popTimeout = 20 * time.Millisecond

	cancel := runWorker(t, worker)
	cancel()
}
