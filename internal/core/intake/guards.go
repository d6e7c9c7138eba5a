// Package intake contains the pure business logic for inbound message
// classification. Guards are pure functions with no side effects.
package intake

import "strings"

// Contribution is a parsed "<problemRef>: <idea>" message body.
type Contribution struct {
	ProblemRef string
	FreeText   string
}

// ParseContribution splits a message body into a problem reference and free
// text. The body splits on the FIRST colon only, so colons inside the idea
// are preserved. Both halves are trimmed. Returns ok=false when the body
// carries no colon.
//
// An empty free text after trimming still parses: minimum-length validation
// is deliberately not applied here.
func ParseContribution(body string) (Contribution, bool) {
	ref, text, found := strings.Cut(body, ":")
	if !found {
		return Contribution{}, false
	}
	return Contribution{
		ProblemRef: strings.TrimSpace(ref),
		FreeText:   strings.TrimSpace(text),
	}, true
}

// CanClarify evaluates whether a contribution has enough content to send to
// the clarifier. Empty raw text is enqueued as-is instead of wasting an
// upstream call.
func CanClarify(c Contribution) bool {
	return c.FreeText != ""
}
