package user

import (
	"context"
	"io"
	"time"

	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/services/storage"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)

	// Profile
	GetProfile(ctx context.Context, patientID string) (*models.Patient, error)
	UpdateProfile(ctx context.Context, patientID string, update models.PatientUpdate, image io.Reader) (*models.Patient, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     patientRepo.PatientRepository
	Images   storage.ImageStore
	TokenTTL time.Duration
}

// RegisterRequest is the self-service sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the session token issued on sign-up or sign-in.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}
