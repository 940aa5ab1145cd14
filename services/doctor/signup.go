package doctor

import (
	"context"
	"errors"
	"io"
	"strings"

	"medibook/database"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Onboard validates an admin onboarding request, uploads the portrait and
// stores the doctor as available with no booked slots.
func (s *DefaultDoctorService) Onboard(ctx context.Context, req models.NewDoctorRequest, image io.Reader) (*models.Doctor, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" ||
		req.Speciality == "" || req.Degree == "" || req.Experience == "" || req.About == "" ||
		req.FeeStructure <= 0 || req.Address.Line1 == "" || req.Address.Line2 == "" || image == nil {
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
		logger.Error("Onboard: failed to check for existing doctor", zap.Error(err))
		return nil, utils.NewInternalError("failed to add doctor", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("email_taken", "Email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password", err)
	}

	if s.Images == nil {
		return nil, utils.NewUpstreamError("Image uploads are not configured", nil)
	}
	imageURL, err := s.Images.UploadImage(ctx, image, "doctors")
	if err != nil {
		logger.Error("Onboard: image upload failed", zap.Error(err))
		return nil, utils.NewUpstreamError("Image upload failed", err)
	}

	doctor := &models.Doctor{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Image:        imageURL,
		Speciality:   req.Speciality,
		Degree:       req.Degree,
		Experience:   req.Experience,
		About:        req.About,
		Availability: true,
		FeeStructure: req.FeeStructure,
		Address:      req.Address,
		BookedSlots:  []string{},
	}
	if err := s.Repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewConflictError("email_taken", "Email already registered")
		}
		logger.Error("Onboard: failed to create doctor", zap.Error(err))
		return nil, utils.NewInternalError("failed to add doctor", err)
	}
	s.invalidate(ctx)

	logger.Info("Doctor onboarded", zap.String("doctorID", doctor.ID))
	return doctor, nil
}

// Login checks the password against the stored hash and issues a doctor token.
func (s *DefaultDoctorService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", utils.NewValidationError("Missing Details")
	}
	doctor, err := s.Repo.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		utils.GetLogger().Error("Doctor login: failed to fetch doctor", zap.Error(err))
		return "", utils.NewInternalError("login failed, please try again", err)
	}
	if doctor == nil || !utils.CheckPassword(doctor.PasswordHash, password) {
		return "", utils.NewUnauthenticatedError("Invalid credentials")
	}

	token, err := utils.GenerateToken(doctor.ID, utils.RoleDoctor, s.TokenTTL)
	if err != nil {
		return "", utils.NewInternalError("failed to issue token", err)
	}
	return token, nil
}
