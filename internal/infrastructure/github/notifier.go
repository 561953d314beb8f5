// Package github posts pipeline decisions back to the submission issue.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"PubrootReview/internal/ports"
)

// Notifier comments on GitHub issues via the REST API. Requires a token
// with issues:write on the journal repository.
type Notifier struct {
	baseURL string
	token   string
	client  *http.Client
}

var _ ports.DecisionNotifier = (*Notifier)(nil)

// NewNotifier registers the owner/repo slug and API token. baseURL is
// overridable for tests.
func NewNotifier(baseURL, ownerRepo, token string) *Notifier {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &Notifier{
		baseURL: fmt.Sprintf("%s/repos/%s", strings.TrimRight(baseURL, "/"), ownerRepo),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// PublishDecision posts the decision message as an issue comment.
func (n *Notifier) PublishDecision(ctx context.Context, issueNumber int, message string) error {
	if n.token == "" {
		return fmt.Errorf("github notifier misconfigured")
	}

	payload, err := json.Marshal(map[string]string{"body": message})
	if err != nil {
		return fmt.Errorf("encode comment: %w", err)
	}

	endpoint := fmt.Sprintf("%s/issues/%d/comments", n.baseURL, issueNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("github error %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return nil
}
