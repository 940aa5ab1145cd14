package doctor

import (
	"context"
	"errors"

	"medibook/database"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

func (s *DefaultDoctorService) GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := s.Repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load doctor", err)
	}
	if doctor == nil {
		return nil, utils.NewNotFoundError("Doctor not found")
	}
	return doctor, nil
}

// UpdateProfile applies only the fields present in update.
func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, doctorID string, update models.DoctorUpdate) (*models.Doctor, error) {
	if update.FeeStructure != nil && *update.FeeStructure < 0 {
		return nil, utils.NewValidationError("Fee must not be negative")
	}
	if update.IsEmpty() {
		return s.GetProfile(ctx, doctorID)
	}
	if err := s.Repo.Update(ctx, doctorID, update); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError("Doctor not found")
		}
		utils.GetLogger().Error("UpdateProfile: failed to update doctor", zap.String("doctorID", doctorID), zap.Error(err))
		return nil, utils.NewInternalError("failed to update doctor", err)
	}
	s.invalidate(ctx)
	return s.GetProfile(ctx, doctorID)
}

func (s *DefaultDoctorService) SetAvailability(ctx context.Context, doctorID string, available bool) (*models.Doctor, error) {
	return s.UpdateProfile(ctx, doctorID, models.DoctorUpdate{Availability: &available})
}

// ToggleAvailability flips the doctor's availability flag.
func (s *DefaultDoctorService) ToggleAvailability(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := s.GetProfile(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.SetAvailability(ctx, doctorID, !doctor.Availability)
}
