package appointment

import (
	"context"
	"fmt"
	"sync"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/services/doctor"
	"medibook/utils"

	"go.uber.org/zap"
)

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	Doctors int `json:"doctors"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Pending int `json:"pending"`
}

// SlotReconciler keeps each doctor's booked slots equal to the slot keys of its
// active appointments. A key without an active appointment is only removed
// once it has been seen stale on two consecutive passes, so a booking whose
// reservation landed but whose appointment insert is still in flight keeps its key.
type SlotReconciler struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Cache        doctor.DirectoryCache

	mu    sync.Mutex
	stale map[string]bool
}

func NewSlotReconciler(doctors doctorRepo.DoctorRepository, appointments appointmentRepo.AppointmentRepository, cache doctor.DirectoryCache) *SlotReconciler {
	return &SlotReconciler{
		Doctors:      doctors,
		Appointments: appointments,
		Cache:        cache,
		stale:        make(map[string]bool),
	}
}

func staleKey(doctorID, slotKey string) string {
	return doctorID + "\x00" + slotKey
}

// Run performs one pass. Passes are serialized.
func (r *SlotReconciler) Run(ctx context.Context) (ReconcileReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := utils.GetLogger()
	var report ReconcileReport

	active, err := r.Appointments.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list active appointments: %w", err)
	}
	held := make(map[string]map[string]bool)
	for _, a := range active {
		if held[a.DoctorID] == nil {
			held[a.DoctorID] = make(map[string]bool)
		}
		held[a.DoctorID][a.SlotKey] = true
	}

	doctors, err := r.Doctors.List(ctx, models.DoctorFilter{})
	if err != nil {
		return report, fmt.Errorf("failed to list doctors: %w", err)
	}

	nextStale := make(map[string]bool)
	changed := false
	for _, d := range doctors {
		report.Doctors++
		booked := make(map[string]bool, len(d.BookedSlots))
		for _, key := range d.BookedSlots {
			booked[key] = true
		}

		for key := range held[d.ID] {
			if booked[key] {
				continue
			}
			if _, err := r.Doctors.ReserveSlot(ctx, d.ID, key); err != nil {
				logger.Error("Reconcile: failed to restore slot", zap.String("doctorID", d.ID), zap.String("slotKey", key), zap.Error(err))
				continue
			}
			report.Added++
			changed = true
		}

		for key := range booked {
			if held[d.ID][key] {
				continue
			}
			sk := staleKey(d.ID, key)
			if !r.stale[sk] {
				nextStale[sk] = true
				report.Pending++
				continue
			}
			stillFree, err := r.stillFree(ctx, d.ID, key)
			if err != nil {
				logger.Error("Reconcile: failed to recheck slot", zap.String("doctorID", d.ID), zap.String("slotKey", key), zap.Error(err))
				nextStale[sk] = true
				continue
			}
			if !stillFree {
				continue
			}
			if err := r.Doctors.ReleaseSlot(ctx, d.ID, key); err != nil {
				logger.Error("Reconcile: failed to release slot", zap.String("doctorID", d.ID), zap.String("slotKey", key), zap.Error(err))
				nextStale[sk] = true
				continue
			}
			report.Removed++
			changed = true
		}
	}
	r.stale = nextStale

	if changed && r.Cache != nil {
		if err := r.Cache.Invalidate(ctx); err != nil {
			logger.Warn("Directory cache invalidation failed", zap.Error(err))
		}
	}
	logger.Info("Slot reconciliation finished",
		zap.Int("doctors", report.Doctors),
		zap.Int("added", report.Added),
		zap.Int("removed", report.Removed),
		zap.Int("pending", report.Pending))
	return report, nil
}

func (r *SlotReconciler) stillFree(ctx context.Context, doctorID, slotKey string) (bool, error) {
	active, err := r.Appointments.HasActive(ctx, doctorID, slotKey)
	if err != nil {
		return false, err
	}
	return !active, nil
}
