package dashboard

import (
	"context"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// LatestLimit is how many recent appointments a dashboard shows.
const LatestLimit = 5

type DashboardService interface {
	Admin(ctx context.Context) (*models.AdminDashboard, error)
	Doctor(ctx context.Context, doctorID string) (*models.DoctorDashboard, error)
}

// DefaultDashboardService aggregates over the three collections.
type DefaultDashboardService struct {
	Doctors      doctorRepo.DoctorRepository
	Patients     patientRepo.PatientRepository
	Appointments appointmentRepo.AppointmentRepository
}

func (s *DefaultDashboardService) Admin(ctx context.Context) (*models.AdminDashboard, error) {
	logger := utils.GetLogger()

	doctors, err := s.Doctors.Count(ctx)
	if err != nil {
		logger.Error("Admin dashboard: doctor count failed", zap.Error(err))
		return nil, utils.NewInternalError("failed to load dashboard", err)
	}
	patients, err := s.Patients.Count(ctx)
	if err != nil {
		logger.Error("Admin dashboard: patient count failed", zap.Error(err))
		return nil, utils.NewInternalError("failed to load dashboard", err)
	}
	appointments, err := s.Appointments.Count(ctx)
	if err != nil {
		logger.Error("Admin dashboard: appointment count failed", zap.Error(err))
		return nil, utils.NewInternalError("failed to load dashboard", err)
	}
	latest, err := s.Appointments.Latest(ctx, LatestLimit)
	if err != nil {
		logger.Error("Admin dashboard: latest appointments failed", zap.Error(err))
		return nil, utils.NewInternalError("failed to load dashboard", err)
	}

	return &models.AdminDashboard{
		Doctors:            doctors,
		Appointments:       appointments,
		Patients:           patients,
		LatestAppointments: latest,
	}, nil
}

// Doctor sums earnings over completed or paid appointments and counts distinct patients.
func (s *DefaultDashboardService) Doctor(ctx context.Context, doctorID string) (*models.DoctorDashboard, error) {
	appts, err := s.Appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		utils.GetLogger().Error("Doctor dashboard failed", zap.String("doctorID", doctorID), zap.Error(err))
		return nil, utils.NewInternalError("failed to load dashboard", err)
	}
	return Summarize(appts), nil
}

// Summarize builds a doctor dashboard from appointments ordered oldest first.
func Summarize(appts []models.Appointment) *models.DoctorDashboard {
	dash := &models.DoctorDashboard{
		Appointments:       len(appts),
		LatestAppointments: []models.Appointment{},
	}
	patients := make(map[string]struct{})
	for _, a := range appts {
		if a.Earning() {
			dash.Earnings += a.Amount
		}
		patients[a.PatientID] = struct{}{}
	}
	dash.Patients = len(patients)

	for i := len(appts) - 1; i >= 0 && len(dash.LatestAppointments) < LatestLimit; i-- {
		dash.LatestAppointments = append(dash.LatestAppointments, appts[i])
	}
	return dash
}
