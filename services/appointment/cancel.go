package appointment

import (
	"context"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// Cancel marks the appointment cancelled and frees its slot. Patients and
// doctors may only cancel their own appointments; admins may cancel any.
// Cancelling a paid appointment is allowed and keeps the payment flag.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, actor Actor, appointmentID string) (*models.Appointment, error) {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case utils.RolePatient:
		if appt.PatientID != actor.ID {
			return nil, utils.NewForbiddenError("Unauthorized action")
		}
	case utils.RoleDoctor:
		if appt.DoctorID != actor.ID {
			return nil, utils.NewForbiddenError("Unauthorized action")
		}
	case utils.RoleAdmin:
	default:
		return nil, utils.NewForbiddenError("Unauthorized action")
	}

	if appt.Cancelled {
		return nil, utils.ErrAlreadyCancelled
	}

	won, err := s.Appointments.MarkCancelled(ctx, appt.ID)
	if err != nil {
		utils.GetLogger().Error("Cancel: failed to cancel appointment", zap.String("appointmentID", appt.ID), zap.Error(err))
		return nil, utils.NewInternalError("failed to cancel appointment", err)
	}
	if !won {
		return nil, utils.ErrAlreadyCancelled
	}
	appt.Cancelled = true

	s.releaseSlot(ctx, appt.DoctorID, appt.SlotKey)
	s.notify(ctx, appt.ID, models.EventCancelled)

	utils.GetLogger().Info("Appointment cancelled",
		zap.String("appointmentID", appt.ID),
		zap.String("actorRole", actor.Role),
		zap.Bool("paid", appt.Payment))
	return appt, nil
}

// MarkCompleted flags the doctor's appointment as completed.
func (s *DefaultAppointmentService) MarkCompleted(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, utils.NewForbiddenError("Mark Failed")
	}
	if appt.Completed {
		return appt, nil
	}
	if err := s.Appointments.MarkCompleted(ctx, appt.ID); err != nil {
		utils.GetLogger().Error("MarkCompleted: update failed", zap.String("appointmentID", appt.ID), zap.Error(err))
		return nil, utils.NewInternalError("failed to complete appointment", err)
	}
	appt.Completed = true
	return appt, nil
}

// ReleaseSlotIfFree removes slotKey from the doctor unless an active
// appointment still holds it.
func (s *DefaultAppointmentService) ReleaseSlotIfFree(ctx context.Context, doctorID, slotKey string) error {
	active, err := s.Appointments.HasActive(ctx, doctorID, slotKey)
	if err != nil {
		return err
	}
	if active {
		utils.GetLogger().Info("Slot still held by an active appointment",
			zap.String("doctorID", doctorID), zap.String("slotKey", slotKey))
		return nil
	}
	if err := s.Doctors.ReleaseSlot(ctx, doctorID, slotKey); err != nil {
		return err
	}
	s.invalidateDirectory(ctx)
	return nil
}

// releaseSlot frees the slot inline and queues a retry when that fails.
func (s *DefaultAppointmentService) releaseSlot(ctx context.Context, doctorID, slotKey string) {
	logger := utils.GetLogger()
	err := s.Doctors.ReleaseSlot(ctx, doctorID, slotKey)
	if err == nil {
		s.invalidateDirectory(ctx)
		return
	}
	logger.Warn("Slot release failed, queueing retry",
		zap.String("doctorID", doctorID), zap.String("slotKey", slotKey), zap.Error(err))
	if s.Tasks == nil {
		return
	}
	if qErr := s.Tasks.EnqueueSlotRelease(context.WithoutCancel(ctx), doctorID, slotKey); qErr != nil {
		logger.Error("Slot release retry could not be queued",
			zap.String("doctorID", doctorID), zap.String("slotKey", slotKey), zap.Error(qErr))
	}
}

func (s *DefaultAppointmentService) notify(ctx context.Context, appointmentID, event string) {
	if s.Tasks == nil {
		return
	}
	if err := s.Tasks.EnqueueAppointmentEmail(context.WithoutCancel(ctx), appointmentID, event); err != nil {
		utils.GetLogger().Warn("Appointment email not queued",
			zap.String("appointmentID", appointmentID), zap.String("event", event), zap.Error(err))
	}
}

func (s *DefaultAppointmentService) invalidateDirectory(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		utils.GetLogger().Warn("Directory cache invalidation failed", zap.Error(err))
	}
}

func (s *DefaultAppointmentService) load(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	if appointmentID == "" {
		return nil, utils.NewValidationError("Missing appointment id")
	}
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		utils.GetLogger().Error("Failed to load appointment", zap.String("appointmentID", appointmentID), zap.Error(err))
		return nil, utils.NewInternalError("failed to load appointment", err)
	}
	if appt == nil {
		return nil, utils.NewNotFoundError("Appointment not found")
	}
	return appt, nil
}
