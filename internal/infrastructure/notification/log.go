package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appbilling "github.com/pgnest/backend/internal/application/billing"
	"github.com/pgnest/backend/internal/infrastructure/config"
)

// LogNotifier writes notifications to the application log instead of
// delivering them. The default for development and for deployments that have
// not wired a delivery service yet.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the notification and reports success
func (n *LogNotifier) Notify(_ context.Context, userID uuid.UUID, notification appbilling.Notification) error {
	n.logger.Info("Notification",
		zap.String("user_id", userID.String()),
		zap.String("type", notification.Type),
		zap.String("title", notification.Title),
		zap.String("body", notification.Body),
		zap.Any("data", notification.Data))
	return nil
}

// New builds the notifier selected by configuration
func New(cfg config.NotificationConfig, logger *zap.Logger) appbilling.Notifier {
	if cfg.Mode == "webhook" {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return NewWebhookNotifier(cfg.WebhookURL, timeout, logger)
	}
	return NewLogNotifier(logger)
}

// Ensure LogNotifier implements billing.Notifier
var _ appbilling.Notifier = (*LogNotifier)(nil)
