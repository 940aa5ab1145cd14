package user

import (
	"context"
	"errors"
	"strings"

	"medibook/database"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register validates the payload, stores a new patient with a bcrypt hash and
// returns a patient session token.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Email == "" || req.Password == "" {
		return nil, utils.NewValidationError("Missing Details")
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, utils.NewValidationError("Please enter a valid email")
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	email := utils.NormalizeEmail(req.Email)

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing patient", zap.Error(err))
		return nil, utils.NewInternalError("registration failed, please try again", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("email_taken", "Email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password", err)
	}

	patient := &models.Patient{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        models.DefaultPhone,
		Gender:       models.NotSelected,
		DOB:          models.NotSelected,
	}
	if err := s.Repo.Create(ctx, patient); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewConflictError("email_taken", "Email already registered")
		}
		utils.GetLogger().Error("Register: failed to create patient", zap.Error(err))
		return nil, utils.NewInternalError("registration failed, please try again", err)
	}

	token, err := utils.GenerateToken(patient.ID, utils.RolePatient, s.TokenTTL)
	if err != nil {
		return nil, utils.NewInternalError("failed to issue token", err)
	}
	utils.GetLogger().Info("Patient registered", zap.String("patientID", patient.ID))
	return &AuthResponse{ID: patient.ID, Token: token}, nil
}
