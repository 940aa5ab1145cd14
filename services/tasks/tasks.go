package tasks

import (
	"encoding/json"
	"time"

	"medibook/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSlotRelease      = "slot:release"
	TypeAppointmentEmail = "email:appointment"
)

func NewSlotReleaseTask(payload models.SlotReleasePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSlotRelease, b)
	opts := []asynq.Option{asynq.MaxRetry(10), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

func NewAppointmentEmailTask(payload models.AppointmentEmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentEmail, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(time.Minute)}

	return task, opts, nil
}
