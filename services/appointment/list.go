package appointment

import (
	"context"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// ListForPatient returns the patient's appointments, newest first.
func (s *DefaultAppointmentService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListByPatient(ctx, patientID)
	if err != nil {
		utils.GetLogger().Error("ListForPatient failed", zap.String("patientID", patientID), zap.Error(err))
		return nil, utils.NewInternalError("failed to list appointments", err)
	}
	return appts, nil
}

// ListForDoctor returns the doctor's appointments with current patient details joined in.
func (s *DefaultAppointmentService) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		utils.GetLogger().Error("ListForDoctor failed", zap.String("doctorID", doctorID), zap.Error(err))
		return nil, utils.NewInternalError("failed to list appointments", err)
	}

	ids := make([]string, 0, len(appts))
	seen := make(map[string]bool, len(appts))
	for _, a := range appts {
		if !seen[a.PatientID] {
			seen[a.PatientID] = true
			ids = append(ids, a.PatientID)
		}
	}
	patients, err := s.Patients.GetByIDs(ctx, ids)
	if err != nil {
		utils.GetLogger().Error("ListForDoctor: failed to join patients", zap.String("doctorID", doctorID), zap.Error(err))
		return nil, utils.NewInternalError("failed to list appointments", err)
	}
	for i := range appts {
		if p, ok := patients[appts[i].PatientID]; ok {
			appts[i].Patient = &models.PatientSummary{Name: p.Name, Image: p.Image, DOB: p.DOB}
		}
	}
	return appts, nil
}

// ListAll returns every appointment for the admin panel.
func (s *DefaultAppointmentService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListAll(ctx)
	if err != nil {
		utils.GetLogger().Error("ListAll appointments failed", zap.Error(err))
		return nil, utils.NewInternalError("failed to list appointments", err)
	}
	return appts, nil
}
