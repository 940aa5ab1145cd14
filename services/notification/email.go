package notification

import (
	"context"
	"fmt"
	"strings"

	"medibook/config"
	"medibook/models"

	"github.com/go-gomail/gomail"
)

// SMTPMailer sends plain-text emails through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) SendAppointmentEmail(ctx context.Context, appointment models.Appointment, event string) error {
	if appointment.PatientData.Email == "" {
		return fmt.Errorf("appointment %s has no patient email", appointment.ID)
	}
	subject, body, err := ComposeAppointmentEmail(appointment, event)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", appointment.PatientData.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

// ComposeAppointmentEmail renders the subject and body for an appointment event.
func ComposeAppointmentEmail(appointment models.Appointment, event string) (string, string, error) {
	slot := strings.ReplaceAll(appointment.SlotDate, "_", "/") + " " + appointment.SlotTime
	var subject, intro string
	switch event {
	case models.EventBooked:
		subject = "Appointment confirmed"
		intro = "Your appointment has been booked."
	case models.EventCancelled:
		subject = "Appointment cancelled"
		intro = "Your appointment has been cancelled."
	default:
		return "", "", fmt.Errorf("unknown appointment event %q", event)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n%s\n\n", appointment.PatientData.Name, intro)
	fmt.Fprintf(&b, "Doctor: %s (%s)\n", appointment.DoctorData.Name, appointment.DoctorData.Speciality)
	fmt.Fprintf(&b, "When: %s\n", slot)
	fmt.Fprintf(&b, "Where: %s, %s\n", appointment.DoctorData.Address.Line1, appointment.DoctorData.Address.Line2)
	fmt.Fprintf(&b, "Fee: %.2f\n", appointment.Amount)
	if event == models.EventCancelled && appointment.Payment {
		b.WriteString("\nYour payment has been recorded.\n")
	}
	return subject, b.String(), nil
}
