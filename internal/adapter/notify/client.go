// Package notify delivers lifecycle events to the notification service.
// Delivery is fire-and-forget: failures are reported to the caller for
// logging but never roll back a session state change.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/peptok-ca/Builder-enterprise-peptok-sub001/internal/domain"
)

// Event is the payload pushed on schedule, start, cancel and feedback.
type Event struct {
	Event     domain.NotificationEvent `json:"event"`
	SessionID string                   `json:"session_id"`
	UserID    string                   `json:"user_id,omitempty"`
	Detail    string                   `json:"detail,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a notification client. An empty baseURL disables delivery.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Publish posts one event to the notification service.
func (c *Client) Publish(ctx context.Context, event Event) error {
	if c.baseURL == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}
	return nil
}
