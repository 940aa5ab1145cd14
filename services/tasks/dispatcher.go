package tasks

import (
	"context"
	"fmt"

	"medibook/models"
	"medibook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher hands work to the background worker.
type Dispatcher interface {
	EnqueueSlotRelease(ctx context.Context, doctorID, slotKey string) error
	EnqueueAppointmentEmail(ctx context.Context, appointmentID, event string) error
}

// AsynqDispatcher enqueues tasks on the Redis-backed asynq queue.
type AsynqDispatcher struct {
	client *asynq.Client
}

func NewAsynqDispatcher(opt asynq.RedisClientOpt) *AsynqDispatcher {
	return &AsynqDispatcher{client: asynq.NewClient(opt)}
}

func (d *AsynqDispatcher) EnqueueSlotRelease(ctx context.Context, doctorID, slotKey string) error {
	task, opts, err := NewSlotReleaseTask(models.SlotReleasePayload{DoctorID: doctorID, SlotKey: slotKey})
	if err != nil {
		return fmt.Errorf("failed to build slot release task: %w", err)
	}
	info, err := d.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue slot release: %w", err)
	}
	utils.GetLogger().Info("Slot release queued",
		zap.String("taskID", info.ID),
		zap.String("doctorID", doctorID),
		zap.String("slotKey", slotKey))
	return nil
}

func (d *AsynqDispatcher) EnqueueAppointmentEmail(ctx context.Context, appointmentID, event string) error {
	task, opts, err := NewAppointmentEmailTask(models.AppointmentEmailPayload{AppointmentID: appointmentID, Event: event})
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue appointment email: %w", err)
	}
	return nil
}

func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

// LogDispatcher records work it cannot queue. The slot reconciler repairs any
// slot left behind.
type LogDispatcher struct{}

func (LogDispatcher) EnqueueSlotRelease(ctx context.Context, doctorID, slotKey string) error {
	utils.GetLogger().Warn("No task queue; slot release deferred to reconciler",
		zap.String("doctorID", doctorID),
		zap.String("slotKey", slotKey))
	return nil
}

func (LogDispatcher) EnqueueAppointmentEmail(ctx context.Context, appointmentID, event string) error {
	utils.GetLogger().Debug("No task queue; appointment email skipped",
		zap.String("appointmentID", appointmentID),
		zap.String("event", event))
	return nil
}
