package app

import (
	"context"
	"testing"

	"github.com/example/hivemind/internal/ports/primary"
	"github.com/example/hivemind/internal/ports/secondary"
)

func newBroadcastFixture() (*BroadcastServiceImpl, *mockSubscriberRepository, *mockProblemRepository, *mockNotifier) {
	subs := newMockSubscriberRepository()
	problems := newMockProblemRepository()
	notifier := &mockNotifier{}
	svc := NewBroadcastService(subs, problems, notifier, discardLogger())
	return svc, subs, problems, notifier
}

func TestBroadcastTask(t *testing.T) {
	svc, subs, problems, notifier := newBroadcastFixture()
	ctx := context.Background()

	problem := &secondary.ProblemRecord{Name: "P vs NP"}
	if err := problems.Create(ctx, problem); err != nil {
		t.Fatalf("seed problem failed: %v", err)
	}
	subs.subscribers["+15550001111"] = &secondary.SubscriberRecord{Identity: "+15550001111", Active: true}
	subs.subscribers["+15550002222"] = &secondary.SubscriberRecord{Identity: "+15550002222", Active: true}

	resp, err := svc.BroadcastTask(ctx, primary.BroadcastTaskRequest{ProblemID: problem.ID, Prompt: "find a reduction"})
	if err != nil {
		t.Fatalf("BroadcastTask failed: %v", err)
	}
	if resp.Sent != 2 || resp.Failed != 0 {
		t.Errorf("expected 2 sent / 0 failed, got %d/%d", resp.Sent, resp.Failed)
	}

	msgs := notifier.messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(msgs))
	}
	want := "Problem 1: find a reduction"
	if msgs[0].body != want {
		t.Errorf("expected body %q, got %q", want, msgs[0].body)
	}
}

func TestBroadcastTask_UnknownProblem(t *testing.T) {
	svc, _, _, _ := newBroadcastFixture()

	if _, err := svc.BroadcastTask(context.Background(), primary.BroadcastTaskRequest{ProblemID: 99, Prompt: "x"}); err == nil {
		t.Fatal("expected error for unknown problem")
	}
}

func TestBroadcastTask_EmptyPrompt(t *testing.T) {
	svc, _, _, _ := newBroadcastFixture()

	if _, err := svc.BroadcastTask(context.Background(), primary.BroadcastTaskRequest{ProblemID: 1, Prompt: "  "}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

// Per-recipient failures are counted; the broadcast keeps going.
func TestBroadcastTask_PartialFailure(t *testing.T) {
	svc, subs, problems, notifier := newBroadcastFixture()
	ctx := context.Background()

	problem := &secondary.ProblemRecord{Name: "P vs NP"}
	if err := problems.Create(ctx, problem); err != nil {
		t.Fatalf("seed problem failed: %v", err)
	}
	subs.subscribers["+15550001111"] = &secondary.SubscriberRecord{Identity: "+15550001111", Active: true}
	subs.subscribers["+15550002222"] = &secondary.SubscriberRecord{Identity: "+15550002222", Active: true}
	notifier.sendErr = errStorageDown

	resp, err := svc.BroadcastTask(ctx, primary.BroadcastTaskRequest{ProblemID: problem.ID, Prompt: "x"})
	if err != nil {
		t.Fatalf("BroadcastTask failed: %v", err)
	}
	if resp.Sent != 0 || resp.Failed != 2 {
		t.Errorf("expected 0 sent / 2 failed, got %d/%d", resp.Sent, resp.Failed)
	}
}

func TestListSubscribers(t *testing.T) {
	svc, subs, _, _ := newBroadcastFixture()

	subs.subscribers["+15550001111"] = &secondary.SubscriberRecord{Identity: "+15550001111", Active: true}

	list, err := svc.ListSubscribers(context.Background())
	if err != nil {
		t.Fatalf("ListSubscribers failed: %v", err)
	}
	if len(list) != 1 || list[0].Identity != "+15550001111" {
		t.Errorf("unexpected subscriber list %+v", list)
	}
}
