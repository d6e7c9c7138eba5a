package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/example/hivemind/internal/ports/primary"
	"github.com/example/hivemind/internal/ports/secondary"
)

// BroadcastServiceImpl implements the BroadcastService interface.
type BroadcastServiceImpl struct {
	subscribers secondary.SubscriberRepository
	problems    secondary.ProblemRepository
	notifier    secondary.Notifier
	logger      *log.Logger
}

// NewBroadcastService creates a new BroadcastService with injected dependencies.
func NewBroadcastService(
	subscribers secondary.SubscriberRepository,
	problems secondary.ProblemRepository,
	notifier secondary.Notifier,
	logger *log.Logger,
) *BroadcastServiceImpl {
	return &BroadcastServiceImpl{
		subscribers: subscribers,
		problems:    problems,
		notifier:    notifier,
		logger:      logger,
	}
}

// BroadcastTask sends a prompt for a problem to every active subscriber.
// Per-recipient failures are logged and counted; the broadcast continues.
func (s *BroadcastServiceImpl) BroadcastTask(ctx context.Context, req primary.BroadcastTaskRequest) (*primary.BroadcastTaskResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("broadcast prompt is required")
	}

	// Validate the problem exists before touching anyone's phone.
	if _, err := s.problems.GetByID(ctx, req.ProblemID); err != nil {
		return nil, fmt.Errorf("failed to validate problem: %w", err)
	}

	subs, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	body := fmt.Sprintf("Problem %d: %s", req.ProblemID, req.Prompt)

	resp := &primary.BroadcastTaskResponse{}
	for _, sub := range subs {
		if err := s.notifier.Send(ctx, sub.Identity, body); err != nil {
			s.logger.Printf("broadcast to %s failed: %v", sub.Identity, err)
			resp.Failed++
			continue
		}
		resp.Sent++
	}

	return resp, nil
}

// ListSubscribers lists all active subscribers.
func (s *BroadcastServiceImpl) ListSubscribers(ctx context.Context) ([]*primary.Subscriber, error) {
	records, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	subs := make([]*primary.Subscriber, len(records))
	for i, r := range records {
		subs[i] = &primary.Subscriber{
			Identity:  r.Identity,
			Active:    r.Active,
			CreatedAt: r.CreatedAt,
		}
	}
	return subs, nil
}

// Ensure BroadcastServiceImpl implements the interface.
var _ primary.BroadcastService = (*BroadcastServiceImpl)(nil)
