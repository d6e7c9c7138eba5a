// Package openai implements the Clarifier port over an OpenAI-compatible
// chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/example/hivemind/internal/ports/secondary"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Clarifier calls a chat-completions endpoint to normalize raw contributions.
// Every call is bounded by the configured timeout: the clarifier sits on the
// inbound webhook's critical path and must fail fast rather than hang.
type Clarifier struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

// NewClarifier creates a clarifier against an OpenAI-compatible baseURL
// (e.g. "https://api.openai.com/v1"). timeout bounds each request.
func NewClarifier(baseURL, model, apiKey string, timeout time.Duration) *Clarifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Clarifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:   true,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Clarify normalizes rawText into a cleaner statement for problemRef.
// Failure kinds map onto the port's sentinel errors so callers can branch
// with errors.Is and degrade to the raw text.
func (c *Clarifier) Clarify(ctx context.Context, problemRef, rawText string) (string, error) {
	prompt := fmt.Sprintf("Clarify this contribution for problem %s: %s", problemRef, rawText)

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	response, err := c.http.Do(request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("clarify %s: %w", problemRef, secondary.ErrUpstreamTimeout)
		}
		return "", fmt.Errorf("clarify %s: %v: %w", problemRef, err, secondary.ErrUpstreamError)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %v: %w", err, secondary.ErrUpstreamError)
	}

	switch {
	case response.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("clarify %s: %w", problemRef, secondary.ErrRateLimited)
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return "", fmt.Errorf("clarify %s: status %d: %w", problemRef, response.StatusCode, secondary.ErrUpstreamError)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %v: %w", err, secondary.ErrUpstreamError)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("clarify %s: empty completion: %w", problemRef, secondary.ErrUpstreamError)
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Ensure Clarifier implements the port.
var _ secondary.Clarifier = (*Clarifier)(nil)
