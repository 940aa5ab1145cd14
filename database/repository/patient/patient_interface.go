package patientRepo

import (
	"context"

	"medibook/models"
)

// PatientRepository defines methods for patient data access. Lookups return
// (nil, nil) when no record matches.
type PatientRepository interface {
	// Create inserts a new patient. A taken email yields database.ErrDuplicate.
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
	// GetByIDs returns the patients with the given IDs keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error)
	// Update applies a partial update. Missing patients yield database.ErrNotFound.
	Update(ctx context.Context, id string, update models.PatientUpdate) error
	Count(ctx context.Context) (int64, error)
}
