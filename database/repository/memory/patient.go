package memoryRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"
)

// PatientRepo implements patientRepo.PatientRepository in memory.
type PatientRepo struct {
	s *Store
}

func (r *PatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.patients {
		if p.Email == patient.Email {
			return fmt.Errorf("failed to create patient: %w", database.ErrDuplicate)
		}
	}
	if _, ok := r.s.patients[patient.ID]; ok {
		return fmt.Errorf("failed to create patient: %w", database.ErrDuplicate)
	}
	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	c := *patient
	r.s.patients[patient.ID] = &c
	return nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.patients[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *PatientRepo) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.patients {
		if p.Email == email {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *PatientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[string]models.Patient, len(ids))
	for _, id := range ids {
		if p, ok := r.s.patients[id]; ok {
			result[id] = *p
		}
	}
	return result, nil
}

func (r *PatientRepo) Update(ctx context.Context, id string, update models.PatientUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.patients[id]
	if !ok {
		return fmt.Errorf("patient with id %s: %w", id, database.ErrNotFound)
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Phone != nil {
		p.Phone = *update.Phone
	}
	if update.Address != nil {
		p.Address = *update.Address
	}
	if update.DOB != nil {
		p.DOB = *update.DOB
	}
	if update.Gender != nil {
		p.Gender = *update.Gender
	}
	if update.Image != nil {
		p.Image = *update.Image
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *PatientRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.patients)), nil
}
