// Package memoryRepo holds mutex-guarded in-process repositories with the same
// conditional-write semantics as the MongoDB ones.
package memoryRepo

import (
	"sync"

	"medibook/models"
)

// Store keeps all records in memory. The zero value is not usable; call NewStore.
type Store struct {
	mu           sync.Mutex
	doctors      map[string]*models.Doctor
	patients     map[string]*models.Patient
	appointments map[string]*models.Appointment

	// seq orders appointments inserted within the same clock tick.
	seq      int64
	inserted map[string]int64
}

func NewStore() *Store {
	return &Store{
		doctors:      make(map[string]*models.Doctor),
		patients:     make(map[string]*models.Patient),
		appointments: make(map[string]*models.Appointment),
		inserted:     make(map[string]int64),
	}
}

// Doctors returns the doctor repository view of the store.
func (s *Store) Doctors() *DoctorRepo {
	return &DoctorRepo{s: s}
}

// Patients returns the patient repository view of the store.
func (s *Store) Patients() *PatientRepo {
	return &PatientRepo{s: s}
}

// Appointments returns the appointment repository view of the store.
func (s *Store) Appointments() *AppointmentRepo {
	return &AppointmentRepo{s: s}
}

func copyDoctor(d *models.Doctor) *models.Doctor {
	c := *d
	c.BookedSlots = append([]string{}, d.BookedSlots...)
	return &c
}
