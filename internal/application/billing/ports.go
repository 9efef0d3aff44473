package billing

import (
	"context"

	"github.com/google/uuid"
)

// Notification is the payload handed to the notification collaborator. The
// engine only decides who gets told what; delivery transport, device tokens
// and retries live on the other side of this boundary.
type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Type  string            `json:"type"`
	Data  map[string]string `json:"data,omitempty"`
}

// Notifier delivers one notification to one user. A non-nil error means the
// tenant was not reached; callers log it and move on, the next scheduled run
// recomputes from current state.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, n Notification) error
}

// ReportCache holds property-level pending-payment reports for a short TTL.
// Implementations may miss at any time; the aggregator recomputes on miss.
type ReportCache interface {
	Get(ctx context.Context, locationID uuid.UUID) (*PendingPaymentsReport, bool)
	Set(ctx context.Context, locationID uuid.UUID, report *PendingPaymentsReport)
	Invalidate(ctx context.Context, locationID uuid.UUID)
}
