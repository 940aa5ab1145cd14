package user

import (
	"context"
	"errors"
	"io"
	"strings"

	"medibook/database"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// GetProfile returns the patient record. The password hash never serializes.
func (s *DefaultUserService) GetProfile(ctx context.Context, patientID string) (*models.Patient, error) {
	patient, err := s.Repo.GetByID(ctx, patientID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load profile", err)
	}
	if patient == nil {
		return nil, utils.NewNotFoundError("User not found")
	}
	return patient, nil
}

// UpdateProfile applies the fields present in update. When image is non-nil it
// is uploaded first and its URL stored on the profile.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, patientID string, update models.PatientUpdate, image io.Reader) (*models.Patient, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, utils.NewValidationError("Name cannot be empty")
	}
	if update.Phone != nil && strings.TrimSpace(*update.Phone) == "" {
		return nil, utils.NewValidationError("Phone cannot be empty")
	}

	if image != nil {
		if s.Images == nil {
			return nil, utils.NewUpstreamError("Image uploads are not configured", nil)
		}
		url, err := s.Images.UploadImage(ctx, image, "patients")
		if err != nil {
			utils.GetLogger().Error("UpdateProfile: image upload failed", zap.String("patientID", patientID), zap.Error(err))
			return nil, utils.NewUpstreamError("Image upload failed", err)
		}
		update.Image = &url
	}

	if update.IsEmpty() {
		return s.GetProfile(ctx, patientID)
	}

	if err := s.Repo.Update(ctx, patientID, update); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		utils.GetLogger().Error("UpdateProfile: failed to update patient", zap.String("patientID", patientID), zap.Error(err))
		return nil, utils.NewInternalError("failed to update profile", err)
	}
	return s.GetProfile(ctx, patientID)
}
