package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	appbilling "github.com/pgnest/backend/internal/application/billing"
	"github.com/pgnest/backend/internal/infrastructure/config"
)

// cronTickerInterval is the interval at which the scheduler checks the clock
const cronTickerInterval = 1 * time.Minute

// ErrSchedulerNotRunning is returned when a manual trigger hits a stopped scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// reminderJob binds a named batch to its daily fire time
type reminderJob struct {
	name   string
	hour   int
	minute int
	run    func(ctx context.Context, now time.Time, reason appbilling.TriggerReason) (appbilling.JobResult, error)
}

// ReminderCronScheduler fires the three daily reminder batches: due-soon in
// the morning, pending-balance in the evening, overdue at night. Each batch
// recomputes from current state, so a missed tick costs one day's reminders
// and nothing else.
type ReminderCronScheduler struct {
	config    config.SchedulerConfig
	reminders *appbilling.ReminderService
	logger    *zap.Logger
	jobs      []reminderJob

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRunAt map[string]time.Time
}

// NewReminderCronScheduler creates a scheduler for the reminder batches
func NewReminderCronScheduler(
	cfg config.SchedulerConfig,
	reminders *appbilling.ReminderService,
	logger *zap.Logger,
) *ReminderCronScheduler {
	s := &ReminderCronScheduler{
		config:    cfg,
		reminders: reminders,
		logger:    logger,
		lastRunAt: make(map[string]time.Time),
	}
	s.jobs = []reminderJob{
		{name: "due_soon", hour: cfg.DueSoonHour, minute: cfg.DueSoonMinute, run: reminders.RunDueSoon},
		{name: "pending", hour: cfg.PendingHour, minute: cfg.PendingMinute, run: reminders.RunPendingReminders},
		{name: "overdue", hour: cfg.OverdueHour, minute: cfg.OverdueMinute, run: reminders.RunOverdue},
	}
	return s
}

// Start starts the cron loop. Idempotent; a second call is a no-op.
func (s *ReminderCronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.cronLoop(ctx)

	s.logger.Info("Reminder scheduler started",
		zap.Int("due_soon_hour", s.config.DueSoonHour),
		zap.Int("pending_hour", s.config.PendingHour),
		zap.Int("overdue_hour", s.config.OverdueHour),
	)
	return nil
}

// Stop stops the cron loop and waits for an in-flight batch to finish
func (s *ReminderCronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Reminder scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *ReminderCronScheduler) cronLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(cronTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, job := range s.jobs {
				if s.shouldRun(job, now) {
					s.runJob(ctx, job, now)
				}
			}
		}
	}
}

// shouldRun matches the job's daily fire time. The once-per-day guard covers
// ticker drift putting two ticks inside the same minute.
func (s *ReminderCronScheduler) shouldRun(job reminderJob, now time.Time) bool {
	if now.Hour() != job.hour || now.Minute() != job.minute {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.lastRunAt[job.name]
	if ok && now.Sub(last) < cronTickerInterval {
		return false
	}
	s.lastRunAt[job.name] = now
	return true
}

func (s *ReminderCronScheduler) runJob(ctx context.Context, job reminderJob, now time.Time) {
	jobCtx := ctx
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	result, err := job.run(jobCtx, now, appbilling.TriggerScheduled)
	if err != nil {
		s.logger.Error("Reminder batch failed",
			zap.String("job", job.name),
			zap.Error(err))
		return
	}
	s.logger.Info("Reminder batch completed",
		zap.String("job", job.name),
		zap.Int("total", result.Total),
		zap.Int("sent", result.Sent))
}

// TriggerManualRun runs one named batch immediately. Uses a background
// context so the batch survives the HTTP request that triggered it.
func (s *ReminderCronScheduler) TriggerManualRun(name string) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	for _, job := range s.jobs {
		if job.name == name {
			go func(job reminderJob) {
				ctx := context.Background()
				if s.config.JobTimeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
					defer cancel()
				}
				if _, err := job.run(ctx, time.Now(), appbilling.TriggerManual); err != nil {
					s.logger.Error("Manual reminder batch failed",
						zap.String("job", job.name),
						zap.Error(err))
				}
			}(job)
			return nil
		}
	}
	return errors.New("unknown reminder job: " + name)
}

// GetStatus returns the scheduler state for the health endpoint
func (s *ReminderCronScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]map[string]any, 0, len(s.jobs))
	for _, job := range s.jobs {
		entry := map[string]any{
			"name":   job.name,
			"hour":   job.hour,
			"minute": job.minute,
		}
		if last, ok := s.lastRunAt[job.name]; ok {
			entry["last_run_at"] = last
		}
		jobs = append(jobs, entry)
	}
	return map[string]any{
		"enabled":    s.config.Enabled,
		"is_running": s.isRunning,
		"jobs":       jobs,
	}
}
