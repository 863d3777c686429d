package usecase

import (
	"context"
	"time"

	"valet-booking-service/pkg/logger"
)

// Reconciler re-runs the local/remote merge. A reconcile attempt after a
// failed one is idempotent: records converge by id.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}

// MirrorReconciler drives periodic remote reconciliation in the background.
// Failures degrade: local state stays authoritative and the next tick tries
// again.
type MirrorReconciler struct {
	target   Reconciler
	interval time.Duration
	logger   logger.Logger
}

// NewMirrorReconciler creates a new background reconciler
func NewMirrorReconciler(target Reconciler, interval time.Duration, logger logger.Logger) *MirrorReconciler {
	return &MirrorReconciler{
		target:   target,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, reconciling on every tick
func (r *MirrorReconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Mirror reconciler stopped")
			return
		case <-ticker.C:
			if err := r.target.Reconcile(ctx); err != nil {
				r.logger.Warn("Remote reconcile failed, continuing from local state", "error", err)
			}
		}
	}
}
