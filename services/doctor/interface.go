package doctor

import (
	"context"
	"io"
	"time"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/services/storage"
)

type DoctorService interface {
	// Directory
	ListPublic(ctx context.Context, filter models.DoctorFilter) ([]models.DoctorPublicView, error)
	ListAll(ctx context.Context) ([]models.Doctor, error)

	// Onboarding and authentication
	Onboard(ctx context.Context, req models.NewDoctorRequest, image io.Reader) (*models.Doctor, error)
	Login(ctx context.Context, email, password string) (string, error)

	// Profile
	GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpdateProfile(ctx context.Context, doctorID string, update models.DoctorUpdate) (*models.Doctor, error)
	SetAvailability(ctx context.Context, doctorID string, available bool) (*models.Doctor, error)
	ToggleAvailability(ctx context.Context, doctorID string) (*models.Doctor, error)
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo     doctorRepo.DoctorRepository
	Cache    DirectoryCache
	Images   storage.ImageStore
	TokenTTL time.Duration
}
