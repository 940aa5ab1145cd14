package doctorRepo

import (
	"context"

	"medibook/models"
)

// DoctorRepository defines methods for doctor data access. Lookups return
// (nil, nil) when no record matches.
type DoctorRepository interface {
	// Create inserts a new doctor. A taken email yields database.ErrDuplicate.
	Create(ctx context.Context, doctor *models.Doctor) error
	// GetByID retrieves a doctor by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by email address.
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	// List returns doctors matching filter, oldest first.
	List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error)
	// Update applies a partial update. Missing doctors yield database.ErrNotFound.
	Update(ctx context.Context, id string, update models.DoctorUpdate) error
	// ReserveSlot adds key to the doctor's booked slots only if it is not already
	// there. It reports false when the slot is taken or the doctor does not exist.
	ReserveSlot(ctx context.Context, id, key string) (bool, error)
	// ReleaseSlot removes key from the doctor's booked slots. Releasing an absent key is a no-op.
	ReleaseSlot(ctx context.Context, id, key string) error
	// Count returns the number of doctors.
	Count(ctx context.Context) (int64, error)
}
