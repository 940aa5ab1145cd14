package cron

import (
	"context"
	"fmt"
	"time"

	"medibook/services/appointment"
	"medibook/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reconciler runs slot reconciliation passes on a cron schedule.
type Reconciler struct {
	c          *cron.Cron
	reconciler *appointment.SlotReconciler
}

// NewReconciler schedules reconciler on spec, e.g. "@every 15m".
func NewReconciler(spec string, reconciler *appointment.SlotReconciler) (*Reconciler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	r := &Reconciler{c: c, reconciler: reconciler}
	if _, err := c.AddFunc(spec, r.runOnce); err != nil {
		return nil, fmt.Errorf("invalid SLOT_RECONCILE_SPEC %q: %w", spec, err)
	}
	return r, nil
}

func (r *Reconciler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := r.reconciler.Run(ctx); err != nil {
		utils.GetLogger().Error("Slot reconciliation failed", zap.Error(err))
	}
}

func (r *Reconciler) Start() {
	r.c.Start()
}

// Stop halts scheduling and waits for a running pass to finish or ctx to expire.
func (r *Reconciler) Stop(ctx context.Context) {
	done := r.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
