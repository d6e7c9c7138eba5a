// Package primary defines the primary ports (driving interfaces) for the application.
package primary

import "context"

// IntakeService defines the primary port for inbound message intake.
type IntakeService interface {
	// HandleInbound processes one inbound message and returns the opaque
	// acknowledgment text for the webhook response. An error means the
	// durable-write phase failed and nothing should be acknowledged.
	HandleInbound(ctx context.Context, req InboundMessage) (*IntakeResult, error)
}

// InboundMessage is one message arriving from the transport provider.
type InboundMessage struct {
	From string
	Body string
}

// IntakeOutcome classifies what the intake pipeline did with a message.
type IntakeOutcome string

const (
	// OutcomeSubscribed means the sender was new and is now registered.
	// The message body is not parsed as content on this turn.
	OutcomeSubscribed IntakeOutcome = "subscribed"
	// OutcomeQueued means a contribution was clarified (or degraded to raw
	// text) and durably enqueued.
	OutcomeQueued IntakeOutcome = "queued"
	// OutcomeFormatHint means the body did not match the contribution
	// format; nothing was mutated.
	OutcomeFormatHint IntakeOutcome = "format_hint"
)

// IntakeResult reports what happened to an inbound message.
type IntakeResult struct {
	Outcome IntakeOutcome
	Reply   string
	// ProblemRef is set for OutcomeQueued.
	ProblemRef string
	// Clarified is set for OutcomeQueued: false means the clarifier failed
	// and the raw text was enqueued instead.
	Clarified bool
}
