package appointment

import (
	"context"
	"errors"
	"time"

	"medibook/database"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book reserves the doctor's slot with a conditional write and then records
// the appointment. A lost race on the reservation surfaces as ErrSlotTaken.
func (s *DefaultAppointmentService) Book(ctx context.Context, patientID, doctorID, slotDate, slotTime string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if doctorID == "" || !models.ValidSlot(slotDate, slotTime) {
		return nil, utils.NewValidationError("Invalid slot selection")
	}

	doc, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		logger.Error("Book: failed to load doctor", zap.String("doctorID", doctorID), zap.Error(err))
		return nil, utils.NewInternalError("failed to book appointment", err)
	}
	if doc == nil {
		return nil, utils.NewNotFoundError("Doctor not found")
	}
	if !doc.Availability {
		return nil, utils.NewConflictError("doctor_unavailable", "Doctor Not Available")
	}

	slotKey := models.SlotKey(slotDate, slotTime)
	if doc.HasSlot(slotKey) {
		return nil, utils.ErrSlotTaken
	}

	patient, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		logger.Error("Book: failed to load patient", zap.String("patientID", patientID), zap.Error(err))
		return nil, utils.NewInternalError("failed to book appointment", err)
	}
	if patient == nil {
		return nil, utils.NewNotFoundError("User not found")
	}

	reserved, err := s.Doctors.ReserveSlot(ctx, doctorID, slotKey)
	if err != nil {
		logger.Error("Book: slot reservation failed", zap.String("doctorID", doctorID), zap.String("slotKey", slotKey), zap.Error(err))
		return nil, utils.NewInternalError("failed to book appointment", err)
	}
	if !reserved {
		return nil, utils.ErrSlotTaken
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: patient.ID,
		DoctorID:  doc.ID,
		SlotDate:  slotDate,
		SlotTime:  slotTime,
		SlotKey:   slotKey,
		PatientData: models.PatientSnapshot{
			Name:  patient.Name,
			Email: patient.Email,
			Image: patient.Image,
			Phone: patient.Phone,
		},
		DoctorData: models.DoctorSnapshot{
			Name:       doc.Name,
			Speciality: doc.Speciality,
			Image:      doc.Image,
			Address:    doc.Address,
		},
		Amount:    doc.FeeStructure,
		CreatedAt: time.Now(),
	}

	if err := s.Appointments.Create(ctx, appt); err != nil {
		// Another active appointment already owns the key, so it stays reserved.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.ErrSlotTaken
		}
		logger.Error("Book: failed to store appointment, releasing slot",
			zap.String("doctorID", doctorID), zap.String("slotKey", slotKey), zap.Error(err))
		s.releaseSlot(ctx, doctorID, slotKey)
		return nil, utils.NewInternalError("failed to book appointment", err)
	}

	s.invalidateDirectory(ctx)
	s.notify(ctx, appt.ID, models.EventBooked)

	logger.Info("Appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("doctorID", doctorID),
		zap.String("slotKey", slotKey))
	return appt, nil
}
