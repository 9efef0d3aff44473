package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pgnest/backend/internal/infrastructure/scheduler"
)

// ReminderHandler exposes manual control of the reminder cron jobs
type ReminderHandler struct {
	BaseHandler
	scheduler *scheduler.ReminderCronScheduler
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(sched *scheduler.ReminderCronScheduler) *ReminderHandler {
	return &ReminderHandler{scheduler: sched}
}

// TriggerRequest names the reminder job to run now
type TriggerRequest struct {
	Job string `json:"job" binding:"required,oneof=due_soon pending overdue"`
}

// Trigger runs one reminder batch immediately, outside its daily schedule.
// The batch runs in the background; this returns as soon as it is queued.
func (h *ReminderHandler) Trigger(c *gin.Context) {
	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.scheduler.TriggerManualRun(req.Job); err != nil {
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			h.Conflict(c, "Reminder scheduler is not running")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"job": req.Job, "triggered": true})
}

// Status reports the scheduler's run state and last-run times
func (h *ReminderHandler) Status(c *gin.Context) {
	h.Success(c, h.scheduler.GetStatus())
}
