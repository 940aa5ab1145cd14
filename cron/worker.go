package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/notification"
	"medibook/services/tasks"
	"medibook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// SlotReleaser frees a doctor slot unless an active appointment holds it.
type SlotReleaser interface {
	ReleaseSlotIfFree(ctx context.Context, doctorID, slotKey string) error
}

// Worker processes background tasks from the asynq queue.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewWorker registers the task handlers on a new asynq server.
func NewWorker(redisOpts asynq.RedisClientOpt, releaser SlotReleaser, appointments appointmentRepo.AppointmentRepository, mailer notification.Mailer) *Worker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: zapAsynqLogger{utils.GetLogger().Sugar()},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSlotRelease, HandleSlotReleaseTask(releaser))
	mux.HandleFunc(tasks.TypeAppointmentEmail, HandleAppointmentEmailTask(appointments, mailer))

	return &Worker{srv: srv, mux: mux}
}

// Start runs the worker in background, retrying startup with backoff.
func (w *Worker) Start() {
	logger := utils.GetLogger()
	go func() {
		logger.Info("Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			logger.Warn("Async worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Async worker disabled; slot reconciler remains active")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown stops pulling tasks and waits for in-flight handlers.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func HandleSlotReleaseTask(releaser SlotReleaser) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.SlotReleasePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid slot release payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := releaser.ReleaseSlotIfFree(ctx, p.DoctorID, p.SlotKey); err != nil {
			utils.GetLogger().Warn("Slot release retry failed",
				zap.String("doctorID", p.DoctorID), zap.String("slotKey", p.SlotKey), zap.Error(err))
			return err
		}
		utils.GetLogger().Info("Slot released by worker", zap.String("doctorID", p.DoctorID), zap.String("slotKey", p.SlotKey))
		return nil
	}
}

func HandleAppointmentEmailTask(appointments appointmentRepo.AppointmentRepository, mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.AppointmentEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid email payload: %v: %w", err, asynq.SkipRetry)
		}
		appt, err := appointments.GetByID(ctx, p.AppointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			utils.GetLogger().Warn("Email skipped, appointment missing", zap.String("appointmentID", p.AppointmentID))
			return nil
		}
		if err := mailer.SendAppointmentEmail(ctx, *appt, p.Event); err != nil {
			utils.GetLogger().Warn("Appointment email failed", zap.String("appointmentID", p.AppointmentID), zap.Error(err))
			return err
		}
		return nil
	}
}

// zapAsynqLogger routes asynq's internal logs through zap.
type zapAsynqLogger struct {
	s *zap.SugaredLogger
}

func (l zapAsynqLogger) Debug(args ...interface{}) { l.s.Debug(args...) }
func (l zapAsynqLogger) Info(args ...interface{})  { l.s.Info(args...) }
func (l zapAsynqLogger) Warn(args ...interface{})  { l.s.Warn(args...) }
func (l zapAsynqLogger) Error(args ...interface{}) { l.s.Error(args...) }
func (l zapAsynqLogger) Fatal(args ...interface{}) { l.s.Fatal(args...) }
