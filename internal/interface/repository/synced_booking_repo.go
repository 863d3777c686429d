package repository

import (
	"context"
	"fmt"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"
	"valet-booking-service/pkg/logger"
	"valet-booking-service/pkg/metrics"
)

const mirrorTimeout = 10 * time.Second

// SyncedBookingRepository implements BookingRepository on top of a durable
// local cache and a best-effort remote mirror. Local is truth: every
// mutation persists locally and synchronously; the mirror write happens in
// the background and its failure never blocks or reverses the local write.
type SyncedBookingRepository struct {
	cache   repository.BookingCache
	mirror  repository.BookingMirror
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewSyncedBookingRepository creates the composite repository. mirror may be
// nil, in which case the repository runs from local state alone.
func NewSyncedBookingRepository(
	cache repository.BookingCache,
	mirror repository.BookingMirror,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *SyncedBookingRepository {
	return &SyncedBookingRepository{
		cache:   cache,
		mirror:  mirror,
		logger:  logger,
		metrics: metrics,
	}
}

// Load returns both collections. The remote store is reconciled first when
// reachable; a remote failure degrades silently to local-only data.
func (r *SyncedBookingRepository) Load(ctx context.Context) ([]entity.Booking, []entity.Booking, error) {
	if err := r.Reconcile(ctx); err != nil {
		r.logger.Warn("Remote reconcile failed, serving local state", "error", err)
	}
	unscheduled, err := r.cache.ByCollection(ctx, entity.CollectionUnscheduled)
	if err != nil {
		return nil, nil, err
	}
	scheduled, err := r.cache.ByCollection(ctx, entity.CollectionScheduled)
	if err != nil {
		return nil, nil, err
	}
	return unscheduled, scheduled, nil
}

// Reconcile pulls the remote records, merges them into the local cache by id
// (remote precedence) and pushes local-only records up. Safe to re-run: the
// merge converges by id.
func (r *SyncedBookingRepository) Reconcile(ctx context.Context) error {
	if r.mirror == nil {
		return nil
	}
	fetchCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	remote, err := r.mirror.FetchAll(fetchCtx)
	if err != nil {
		if r.metrics != nil {
			r.metrics.SyncFailures.Inc()
		}
		return fmt.Errorf("fetch remote bookings: %w", err)
	}

	local := make([]entity.Booking, 0)
	for _, col := range []entity.Collection{entity.CollectionUnscheduled, entity.CollectionScheduled} {
		part, err := r.cache.ByCollection(ctx, col)
		if err != nil {
			return err
		}
		local = append(local, part...)
	}
	local = DedupeByID(local)

	for _, b := range MergeByID(local, remote) {
		b.Normalize()
		if !b.Validate() {
			r.logger.Warn("Discarding malformed remote booking", "bookingId", b.ID)
			continue
		}
		if b.Status == entity.StatusCancelled {
			continue
		}
		booking := b
		if err := r.cache.Put(ctx, &booking, entity.CollectionFor(b.Status)); err != nil {
			return fmt.Errorf("merge booking %s: %w", b.ID, err)
		}
	}

	for _, b := range localOnly(local, remote) {
		booking := b
		r.mirrorAsync("booking upsert", func(ctx context.Context) error {
			return r.mirror.Upsert(ctx, &booking)
		})
	}
	return nil
}

// Unscheduled returns the pending bookings
func (r *SyncedBookingRepository) Unscheduled(ctx context.Context) ([]entity.Booking, error) {
	return r.cache.ByCollection(ctx, entity.CollectionUnscheduled)
}

// Scheduled returns the confirmed-and-beyond bookings
func (r *SyncedBookingRepository) Scheduled(ctx context.Context) ([]entity.Booking, error) {
	return r.cache.ByCollection(ctx, entity.CollectionScheduled)
}

// FindByID searches the unscheduled and scheduled collections
func (r *SyncedBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, entity.Collection, error) {
	return r.cache.FindByID(ctx, id)
}

// CreateUnscheduled persists a new pending booking locally, then mirrors it
func (r *SyncedBookingRepository) CreateUnscheduled(ctx context.Context, booking *entity.Booking) error {
	booking.Normalize()
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	if err := r.cache.Put(ctx, booking, entity.CollectionUnscheduled); err != nil {
		return err
	}
	r.mirrorUpsert(booking)
	return nil
}

// Update rewrites a booking inside whichever collection its status maps to
func (r *SyncedBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	booking.Normalize()
	if err := r.cache.Put(ctx, booking, entity.CollectionFor(booking.Status)); err != nil {
		return err
	}
	r.mirrorUpsert(booking)
	return nil
}

// MoveToScheduled moves a booking into the scheduled collection. Moving an
// already-scheduled booking rewrites it in place, never duplicates it.
func (r *SyncedBookingRepository) MoveToScheduled(ctx context.Context, booking *entity.Booking) error {
	booking.Normalize()
	if err := r.cache.Put(ctx, booking, entity.CollectionScheduled); err != nil {
		return err
	}
	r.mirrorUpsert(booking)
	return nil
}

// ArchiveCancelled moves a booking into the append-only cancelled archive
func (r *SyncedBookingRepository) ArchiveCancelled(ctx context.Context, booking *entity.Booking) error {
	booking.Normalize()
	if err := r.cache.Put(ctx, booking, entity.CollectionCancelled); err != nil {
		return err
	}
	r.mirrorUpsert(booking)
	return nil
}

// Delete removes a booking from whichever live collection holds it
func (r *SyncedBookingRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, id); err != nil {
		return err
	}
	if r.mirror != nil {
		r.mirrorAsync("booking delete", func(ctx context.Context) error {
			return r.mirror.Delete(ctx, id)
		})
	}
	return nil
}

func (r *SyncedBookingRepository) mirrorUpsert(booking *entity.Booking) {
	if r.mirror == nil {
		return
	}
	snapshot := *booking
	r.mirrorAsync("booking upsert", func(ctx context.Context) error {
		return r.mirror.Upsert(ctx, &snapshot)
	})
}

// mirrorAsync runs a remote write without blocking the local one. Failures
// are logged and counted, never surfaced.
func (r *SyncedBookingRepository) mirrorAsync(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			r.logger.Warn("Remote sync degraded", "op", op, "error", err)
			if r.metrics != nil {
				r.metrics.SyncFailures.Inc()
			}
		}
	}()
}
