// Package app contains the application services implementing the primary ports.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/example/hivemind/internal/core/intake"
	"github.com/example/hivemind/internal/ports/primary"
	"github.com/example/hivemind/internal/ports/secondary"
)

// Reply texts for the inbound webhook. The webhook response body is opaque
// acknowledgment text, not protocol-significant.
const (
	replyWelcome    = "Subscribed to problem updates."
	replyFormatHint = "Format: <problem_id>: <your idea>"
)

func replyQueued(problemRef string) string {
	return fmt.Sprintf("Contribution received for Problem %s. Queued for review.", problemRef)
}

// IntakeServiceImpl implements the IntakeService interface. It is stateless
// across messages; all state lives in the registry and the queue.
type IntakeServiceImpl struct {
	subscribers secondary.SubscriberRepository
	queue       secondary.ContributionQueue
	clarifier   secondary.Clarifier
	notifier    secondary.Notifier
	logger      *log.Logger
}

// NewIntakeService creates a new IntakeService with injected dependencies.
func NewIntakeService(
	subscribers secondary.SubscriberRepository,
	queue secondary.ContributionQueue,
	clarifier secondary.Clarifier,
	notifier secondary.Notifier,
	logger *log.Logger,
) *IntakeServiceImpl {
	return &IntakeServiceImpl{
		subscribers: subscribers,
		queue:       queue,
		clarifier:   clarifier,
		notifier:    notifier,
		logger:      logger,
	}
}

// HandleInbound runs the intake state machine for one inbound message.
//
// Ordering matters: the acknowledgment notification goes out only after the
// durable write (registry insert or queue push) committed. A failed durable
// write propagates as an error with no acknowledgment sent, so the sender
// can safely resend.
func (s *IntakeServiceImpl) HandleInbound(ctx context.Context, req primary.InboundMessage) (*primary.IntakeResult, error) {
	identity := strings.TrimSpace(req.From)
	if identity == "" {
		return nil, fmt.Errorf("inbound message has no sender identity")
	}

	subscriber, err := s.subscribers.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sender: %w", err)
	}

	if subscriber == nil {
		_, created, err := s.subscribers.CreateIfAbsent(ctx, identity)
		if err != nil {
			return nil, fmt.Errorf("failed to register subscriber: %w", err)
		}
		if created {
			// A brand-new sender's first message is always a subscription
			// event. The body is not parsed as content on this turn, even
			// if it happens to match the contribution format.
			s.notify(ctx, identity, replyWelcome)
			return &primary.IntakeResult{Outcome: primary.OutcomeSubscribed, Reply: replyWelcome}, nil
		}
		// Lost a create race: the sender is a subscriber now, so the message
		// falls through and is handled as content.
	}

	contribution, ok := intake.ParseContribution(req.Body)
	if !ok {
		// Unrecognized format mutates nothing.
		s.notify(ctx, identity, replyFormatHint)
		return &primary.IntakeResult{Outcome: primary.OutcomeFormatHint, Reply: replyFormatHint}, nil
	}

	body, clarified := s.clarify(ctx, contribution)

	item := &secondary.QueuedContribution{
		Identity:   identity,
		ProblemRef: contribution.ProblemRef,
		Body:       body,
		Clarified:  clarified,
	}
	if err := s.queue.Push(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to enqueue contribution: %w", err)
	}

	reply := replyQueued(contribution.ProblemRef)
	s.notify(ctx, identity, reply)

	return &primary.IntakeResult{
		Outcome:    primary.OutcomeQueued,
		Reply:      reply,
		ProblemRef: contribution.ProblemRef,
		Clarified:  clarified,
	}, nil
}

// clarify runs the contribution through the clarifier. Any clarifier failure
// degrades to the raw trimmed text rather than dropping the contribution;
// the returned flag records which text was kept.
func (s *IntakeServiceImpl) clarify(ctx context.Context, c intake.Contribution) (string, bool) {
	if !intake.CanClarify(c) {
		return c.FreeText, false
	}

	clarified, err := s.clarifier.Clarify(ctx, c.ProblemRef, c.FreeText)
	if err != nil {
		s.logger.Printf("clarifier failed for problem %s, enqueuing raw text: %v", c.ProblemRef, err)
		return c.FreeText, false
	}

	return clarified, true
}

// notify sends best-effort: a delivery failure is logged, never surfaced to
// the webhook caller.
func (s *IntakeServiceImpl) notify(ctx context.Context, to, body string) {
	if err := s.notifier.Send(ctx, to, body); err != nil {
		s.logger.Printf("notification to %s failed: %v", to, err)
	}
}

// Ensure IntakeServiceImpl implements the interface.
var _ primary.IntakeService = (*IntakeServiceImpl)(nil)
