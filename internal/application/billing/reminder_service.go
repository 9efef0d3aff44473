package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgnest/backend/internal/domain/property"
	"go.uber.org/zap"
)

// TriggerReason tags a reminder batch with what started it. Scheduled runs and
// manual triggers share the same code path; only the tag differs.
type TriggerReason string

const (
	TriggerScheduled TriggerReason = "scheduled"
	TriggerManual    TriggerReason = "manual"
)

// Days before the due date at which the due-soon reminder fires.
const dueSoonWindowDays = 3

// JobResult reports one reminder batch: how many tenants qualified and how
// many notifications actually went out.
type JobResult struct {
	Total int `json:"total"`
	Sent  int `json:"sent"`
}

// ReminderService runs the scheduled notification batches: due-soon, overdue
// and pending-payment nudges. A failed delivery to one tenant never aborts
// the batch; the failure is logged, counted as unsent, and the next run
// recomputes the recipient set from current state.
type ReminderService struct {
	locationRepo property.LocationRepository
	pending      *PendingPaymentService
	notifier     Notifier
	logger       *zap.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(
	locationRepo property.LocationRepository,
	pending *PendingPaymentService,
	notifier Notifier,
	logger *zap.Logger,
) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		locationRepo: locationRepo,
		pending:      pending,
		notifier:     notifier,
		logger:       logger,
	}
}

// RunDueSoon notifies tenants whose rent falls due three days from now
func (s *ReminderService) RunDueSoon(ctx context.Context, now time.Time, reason TriggerReason) (JobResult, error) {
	return s.runAcrossLocations(ctx, "due_soon", reason, func(ctx context.Context, locationID uuid.UUID) ([]DueTenant, error) {
		return s.pending.DueInDays(ctx, locationID, now, dueSoonWindowDays)
	}, func(d DueTenant) Notification {
		return Notification{
			Title: "Rent due soon",
			Body:  fmt.Sprintf("Your rent of %s is due on %s.", d.DueAmount.String(), d.DueDate.Format("02 Jan 2006")),
			Type:  "payment_due_soon",
			Data: map[string]string{
				"due_date":   d.DueDate.Format(time.RFC3339),
				"due_amount": d.DueAmount.String(),
			},
		}
	})
}

// RunOverdue notifies tenants whose due date has passed without settlement
func (s *ReminderService) RunOverdue(ctx context.Context, now time.Time, reason TriggerReason) (JobResult, error) {
	return s.runAcrossLocations(ctx, "overdue", reason, func(ctx context.Context, locationID uuid.UUID) ([]DueTenant, error) {
		return s.pending.Overdue(ctx, locationID, now)
	}, func(d DueTenant) Notification {
		return Notification{
			Title: "Rent overdue",
			Body:  fmt.Sprintf("Your rent of %s was due on %s. Please pay at the earliest.", d.DueAmount.String(), d.DueDate.Format("02 Jan 2006")),
			Type:  "payment_overdue",
			Data: map[string]string{
				"due_date":   d.DueDate.Format(time.RFC3339),
				"due_amount": d.DueAmount.String(),
			},
		}
	})
}

// RunPendingReminders notifies every tenant whose reconciliation shows
// missing or unsettled months. Unlike the date-windowed jobs this walks the
// full pending-payments report per location.
func (s *ReminderService) RunPendingReminders(ctx context.Context, now time.Time, reason TriggerReason) (JobResult, error) {
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return JobResult{}, fmt.Errorf("failed to list locations: %w", err)
	}

	var result JobResult
	for i := range locations {
		loc := &locations[i]
		report, err := s.pending.Report(ctx, loc.ID, now)
		if err != nil {
			s.logger.Error("Pending-payments report failed, skipping location",
				zap.String("location_id", loc.ID.String()),
				zap.Error(err),
			)
			continue
		}

		for _, view := range report.Tenants {
			result.Total++
			n := Notification{
				Title: "Pending rent",
				Body: fmt.Sprintf("You have %s in pending rent across %d month(s).",
					view.Reconciliation.TotalDue.String(),
					len(view.Reconciliation.MissingMonths)+len(view.Reconciliation.UnsettledMonths)),
				Type: "payment_pending",
				Data: map[string]string{
					"total_due":      view.Reconciliation.TotalDue.String(),
					"overall_status": string(view.Reconciliation.OverallStatus),
				},
			}
			if err := s.notifier.Notify(ctx, view.TenantID, n); err != nil {
				s.logger.Warn("Notification delivery failed",
					zap.String("tenant_id", view.TenantID.String()),
					zap.String("job", "pending"),
					zap.Error(err),
				)
				continue
			}
			result.Sent++
		}
	}

	s.logger.Info("Reminder batch finished",
		zap.String("job", "pending"),
		zap.String("reason", string(reason)),
		zap.Int("total", result.Total),
		zap.Int("sent", result.Sent),
	)
	return result, nil
}

func (s *ReminderService) runAcrossLocations(
	ctx context.Context,
	job string,
	reason TriggerReason,
	collect func(ctx context.Context, locationID uuid.UUID) ([]DueTenant, error),
	build func(DueTenant) Notification,
) (JobResult, error) {
	locations, err := s.locationRepo.FindAll(ctx)
	if err != nil {
		return JobResult{}, fmt.Errorf("failed to list locations: %w", err)
	}

	var result JobResult
	for i := range locations {
		loc := &locations[i]
		due, err := collect(ctx, loc.ID)
		if err != nil {
			s.logger.Error("Reminder collection failed, skipping location",
				zap.String("location_id", loc.ID.String()),
				zap.String("job", job),
				zap.Error(err),
			)
			continue
		}

		for _, d := range due {
			result.Total++
			if err := s.notifier.Notify(ctx, d.TenantID, build(d)); err != nil {
				s.logger.Warn("Notification delivery failed",
					zap.String("tenant_id", d.TenantID.String()),
					zap.String("job", job),
					zap.Error(err),
				)
				continue
			}
			result.Sent++
		}
	}

	s.logger.Info("Reminder batch finished",
		zap.String("job", job),
		zap.String("reason", string(reason)),
		zap.Int("total", result.Total),
		zap.Int("sent", result.Sent),
	)
	return result, nil
}
