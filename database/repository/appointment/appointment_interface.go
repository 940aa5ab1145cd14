package appointmentRepo

import (
	"context"

	"medibook/models"
)

// AppointmentRepository defines methods for appointment data access. Lookups
// return (nil, nil) when no record matches.
type AppointmentRepository interface {
	// Create inserts an appointment. Another active appointment for the same
	// doctor and slot key yields database.ErrDuplicate.
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListByPatient returns a patient's appointments, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// ListByDoctor returns a doctor's appointments, oldest first.
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// ListAll returns every appointment, oldest first.
	ListAll(ctx context.Context) ([]models.Appointment, error)
	// ListActive returns every non-cancelled appointment.
	ListActive(ctx context.Context) ([]models.Appointment, error)
	// Latest returns up to limit appointments, newest first.
	Latest(ctx context.Context, limit int64) ([]models.Appointment, error)
	Count(ctx context.Context) (int64, error)
	// HasActive reports whether a non-cancelled appointment holds the doctor's slot key.
	HasActive(ctx context.Context, doctorID, slotKey string) (bool, error)
	// MarkCancelled sets cancelled only if it is still false. It reports false
	// when the appointment was already cancelled or does not exist.
	MarkCancelled(ctx context.Context, id string) (bool, error)
	// MarkCompleted sets completed. Missing appointments yield database.ErrNotFound.
	MarkCompleted(ctx context.Context, id string) error
	// MarkPaid sets payment and records the gateway references.
	MarkPaid(ctx context.Context, id string, receipt models.PaymentReceipt) error
	// SetOrderID binds a gateway order reference to the appointment.
	SetOrderID(ctx context.Context, id, orderID string) error
}
