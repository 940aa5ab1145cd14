package memoryRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"medibook/database"
	"medibook/models"
)

// AppointmentRepo implements appointmentRepo.AppointmentRepository in memory.
// Like the partial unique index in MongoDB, it refuses a second active
// appointment for the same doctor and slot key.
type AppointmentRepo struct {
	s *Store
}

func (r *AppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[appointment.ID]; ok {
		return fmt.Errorf("failed to create appointment: %w", database.ErrDuplicate)
	}
	for _, a := range r.s.appointments {
		if !a.Cancelled && a.DoctorID == appointment.DoctorID && a.SlotKey == appointment.SlotKey {
			return fmt.Errorf("failed to create appointment: %w", database.ErrDuplicate)
		}
	}
	if appointment.CreatedAt.IsZero() {
		appointment.CreatedAt = time.Now()
	}
	c := *appointment
	r.s.appointments[appointment.ID] = &c
	r.s.seq++
	r.s.inserted[appointment.ID] = r.s.seq
	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *AppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.PatientID == patientID }, true, 0), nil
}

func (r *AppointmentRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.DoctorID == doctorID }, false, 0), nil
}

func (r *AppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return r.list(func(*models.Appointment) bool { return true }, false, 0), nil
}

func (r *AppointmentRepo) ListActive(ctx context.Context) ([]models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return !a.Cancelled }, false, 0), nil
}

func (r *AppointmentRepo) Latest(ctx context.Context, limit int64) ([]models.Appointment, error) {
	return r.list(func(*models.Appointment) bool { return true }, true, int(limit)), nil
}

// list returns matching appointments ordered by creation time, then insertion order.
func (r *AppointmentRepo) list(match func(*models.Appointment) bool, newestFirst bool, limit int) []models.Appointment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := []models.Appointment{}
	for _, a := range r.s.appointments {
		if match(a) {
			result = append(result, *a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		ti, tj := result[i].CreatedAt, result[j].CreatedAt
		older := ti.Before(tj) || (ti.Equal(tj) && r.s.inserted[result[i].ID] < r.s.inserted[result[j].ID])
		if newestFirst {
			return !older
		}
		return older
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (r *AppointmentRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.appointments)), nil
}

func (r *AppointmentRepo) HasActive(ctx context.Context, doctorID, slotKey string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.appointments {
		if !a.Cancelled && a.DoctorID == doctorID && a.SlotKey == slotKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepo) MarkCancelled(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok || a.Cancelled {
		return false, nil
	}
	a.Cancelled = true
	return true, nil
}

func (r *AppointmentRepo) MarkCompleted(ctx context.Context, id string) error {
	return r.update(id, func(a *models.Appointment) { a.Completed = true })
}

func (r *AppointmentRepo) MarkPaid(ctx context.Context, id string, receipt models.PaymentReceipt) error {
	return r.update(id, func(a *models.Appointment) {
		a.Payment = true
		a.OrderID = receipt.OrderID
		a.PaymentID = receipt.PaymentID
		a.Signature = receipt.Signature
	})
}

func (r *AppointmentRepo) SetOrderID(ctx context.Context, id, orderID string) error {
	return r.update(id, func(a *models.Appointment) { a.OrderID = orderID })
}

func (r *AppointmentRepo) update(id string, apply func(*models.Appointment)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return fmt.Errorf("appointment with id %s: %w", id, database.ErrNotFound)
	}
	apply(a)
	return nil
}
