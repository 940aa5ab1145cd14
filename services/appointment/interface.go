package appointment

import (
	"context"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/services/doctor"
	"medibook/services/tasks"
)

type AppointmentService interface {
	// Lifecycle
	Book(ctx context.Context, patientID, doctorID, slotDate, slotTime string) (*models.Appointment, error)
	Cancel(ctx context.Context, actor Actor, appointmentID string) (*models.Appointment, error)
	MarkCompleted(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error)

	// Listings
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)

	// Receipt renders a PDF receipt for one of the patient's appointments.
	Receipt(ctx context.Context, patientID, appointmentID string) ([]byte, error)

	// ReleaseSlotIfFree frees a doctor slot unless an active appointment still holds it.
	ReleaseSlotIfFree(ctx context.Context, doctorID, slotKey string) error
}

// Actor identifies who is acting on an appointment.
type Actor struct {
	ID   string
	Role string
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Doctors      doctorRepo.DoctorRepository
	Patients     patientRepo.PatientRepository
	Appointments appointmentRepo.AppointmentRepository
	Cache        doctor.DirectoryCache
	Tasks        tasks.Dispatcher
}
