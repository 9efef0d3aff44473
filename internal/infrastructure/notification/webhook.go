package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/pgnest/backend/internal/application/billing"
)

// WebhookNotifier delivers notifications by POSTing them to an external
// delivery service. The service owns device tokens, channel choice and
// retries; a non-2xx response here is reported back as an undelivered
// notification.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWebhookNotifier creates a webhook notifier for the given endpoint
func NewWebhookNotifier(url string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type webhookPayload struct {
	UserID       string                  `json:"user_id"`
	Notification appbilling.Notification `json:"notification"`
}

// Notify posts one notification to the delivery endpoint
func (n *WebhookNotifier) Notify(ctx context.Context, userID uuid.UUID, notification appbilling.Notification) error {
	body, err := json.Marshal(webhookPayload{
		UserID:       userID.String(),
		Notification: notification,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notification endpoint returned status %d", resp.StatusCode)
	}

	n.logger.Debug("Notification delivered",
		zap.String("user_id", userID.String()),
		zap.String("type", notification.Type))
	return nil
}

// Ensure WebhookNotifier implements billing.Notifier
var _ appbilling.Notifier = (*WebhookNotifier)(nil)
