package secondary

import (
	"context"
	"errors"
)

// Clarifier failure kinds. The intake pipeline branches on these with
// errors.Is: all three degrade to enqueuing the raw text rather than
// dropping the contribution.
var (
	// ErrUpstreamTimeout indicates the clarifier did not answer within its
	// bounded timeout.
	ErrUpstreamTimeout = errors.New("clarifier upstream timeout")

	// ErrUpstreamError indicates a non-2xx or malformed clarifier response.
	ErrUpstreamError = errors.New("clarifier upstream error")

	// ErrRateLimited indicates the clarifier rejected the call with a
	// rate-limit response.
	ErrRateLimited = errors.New("clarifier rate limited")
)

// Clarifier defines the secondary port for contribution clarification.
// Implementations call an external text-generation capability and must
// bound the call with a timeout: the clarifier sits on the inbound
// webhook's critical path.
type Clarifier interface {
	// Clarify normalizes rawText, submitted against problemRef, into a
	// cleaner statement. rawText is non-empty after trimming (callers
	// enforce this).
	Clarify(ctx context.Context, problemRef, rawText string) (string, error)
}
