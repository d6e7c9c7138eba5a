// Package twilio implements the Notifier port over the Twilio REST
// Messages API.
package twilio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/hivemind/internal/ports/secondary"
)

const defaultBaseURL = "https://api.twilio.com"

// Notifier sends SMS messages through a Twilio account.
type Notifier struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

// NewNotifier creates a Twilio-backed notifier sending from the given number.
func NewNotifier(accountSID, authToken, from string) *Notifier {
	return &Notifier{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    defaultBaseURL,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// NewNotifierWithBaseURL creates a notifier against a non-default endpoint.
// Used by tests.
func NewNotifierWithBaseURL(accountSID, authToken, from, baseURL string) *Notifier {
	n := NewNotifier(accountSID, authToken, from)
	n.baseURL = strings.TrimRight(baseURL, "/")
	return n
}

// Send delivers body to the contact identity to. The Messages API takes
// form-encoded fields and answers 201 on accepted sends.
func (n *Notifier) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", n.baseURL, n.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", n.from)
	form.Set("Body", body)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.SetBasicAuth(n.accountSID, n.authToken)

	response, err := n.http.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", to, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return fmt.Errorf("failed to send message to %s: status %d: %s", to, response.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}

// Ensure Notifier implements the port.
var _ secondary.Notifier = (*Notifier)(nil)
