package admin

import (
	"context"
	"strings"

	"medibook/utils"

	"go.uber.org/zap"
)

// Login checks the configured admin credentials and issues an admin token.
func (s *DefaultAdminService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", utils.NewValidationError("Missing Details")
	}
	if !s.matches(email, password) {
		utils.GetLogger().Warn("Admin login rejected")
		return "", utils.NewUnauthenticatedError("Invalid credentials")
	}

	token, err := utils.GenerateToken(s.Credentials.Email, utils.RoleAdmin, s.TokenTTL)
	if err != nil {
		utils.GetLogger().Error("Admin login: token generation failed", zap.Error(err))
		return "", utils.NewInternalError("failed to issue token", err)
	}
	return token, nil
}

func (s *DefaultAdminService) matches(email, password string) bool {
	creds := s.Credentials
	if creds.Email == "" || (creds.Password == "" && creds.PasswordHash == "") {
		return false
	}
	emailOK := utils.ConstantTimeEqual(strings.ToLower(strings.TrimSpace(email)), strings.ToLower(creds.Email))
	var passwordOK bool
	if creds.PasswordHash != "" {
		passwordOK = utils.CheckPassword(creds.PasswordHash, password)
	} else {
		passwordOK = utils.ConstantTimeEqual(password, creds.Password)
	}
	return emailOK && passwordOK
}
