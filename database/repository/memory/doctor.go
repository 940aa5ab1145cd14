package memoryRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"medibook/database"
	"medibook/models"
)

// DoctorRepo implements doctorRepo.DoctorRepository in memory.
type DoctorRepo struct {
	s *Store
}

func (r *DoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.doctors {
		if d.Email == doctor.Email {
			return fmt.Errorf("failed to create doctor: %w", database.ErrDuplicate)
		}
	}
	if _, ok := r.s.doctors[doctor.ID]; ok {
		return fmt.Errorf("failed to create doctor: %w", database.ErrDuplicate)
	}
	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	if doctor.BookedSlots == nil {
		doctor.BookedSlots = []string{}
	}
	r.s.doctors[doctor.ID] = copyDoctor(doctor)
	return nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return nil, nil
	}
	return copyDoctor(d), nil
}

func (r *DoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.doctors {
		if d.Email == email {
			return copyDoctor(d), nil
		}
	}
	return nil, nil
}

func (r *DoctorRepo) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doctors := []models.Doctor{}
	for _, d := range r.s.doctors {
		if filter.Speciality != "" && d.Speciality != filter.Speciality {
			continue
		}
		if filter.AvailableOnly && !d.Availability {
			continue
		}
		doctors = append(doctors, *copyDoctor(d))
	}
	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].CreatedAt.Before(doctors[j].CreatedAt)
	})
	return doctors, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id string, update models.DoctorUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return fmt.Errorf("doctor with id %s: %w", id, database.ErrNotFound)
	}
	if update.AddressLine1 != nil {
		d.Address.Line1 = *update.AddressLine1
	}
	if update.AddressLine2 != nil {
		d.Address.Line2 = *update.AddressLine2
	}
	if update.FeeStructure != nil {
		d.FeeStructure = *update.FeeStructure
	}
	if update.Availability != nil {
		d.Availability = *update.Availability
	}
	if update.About != nil {
		d.About = *update.About
	}
	if update.Image != nil {
		d.Image = *update.Image
	}
	d.UpdatedAt = time.Now()
	return nil
}

func (r *DoctorRepo) ReserveSlot(ctx context.Context, id, key string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok || d.HasSlot(key) {
		return false, nil
	}
	d.BookedSlots = append(d.BookedSlots, key)
	d.UpdatedAt = time.Now()
	return true, nil
}

func (r *DoctorRepo) ReleaseSlot(ctx context.Context, id, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return nil
	}
	kept := d.BookedSlots[:0]
	for _, s := range d.BookedSlots {
		if s != key {
			kept = append(kept, s)
		}
	}
	d.BookedSlots = kept
	d.UpdatedAt = time.Now()
	return nil
}

func (r *DoctorRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.doctors)), nil
}
