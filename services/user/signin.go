package user

import (
	"context"

	"medibook/utils"

	"go.uber.org/zap"
)

// Login checks the password against the stored hash and issues a patient token.
// Unknown emails and wrong passwords fail identically.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, utils.NewValidationError("Missing Details")
	}
	patient, err := s.Repo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch patient", zap.Error(err))
		return nil, utils.NewInternalError("login failed, please try again", err)
	}
	if patient == nil || !utils.CheckPassword(patient.PasswordHash, password) {
		return nil, utils.NewUnauthenticatedError("Invalid credentials")
	}

	token, err := utils.GenerateToken(patient.ID, utils.RolePatient, s.TokenTTL)
	if err != nil {
		return nil, utils.NewInternalError("failed to issue token", err)
	}
	return &AuthResponse{ID: patient.ID, Token: token}, nil
}
