package notification

import (
	"context"

	"medibook/models"
)

// Mailer sends appointment notifications to patients.
type Mailer interface {
	SendAppointmentEmail(ctx context.Context, appointment models.Appointment, event string) error
}

// NoopMailer drops every message. It is used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) SendAppointmentEmail(ctx context.Context, appointment models.Appointment, event string) error {
	return nil
}
