package usecase

import (
	"context"
	"fmt"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"
	"valet-booking-service/pkg/logger"
	"valet-booking-service/pkg/metrics"
)

// ConfirmOptions carries the caller-supplied scheduling details for a
// pending -> confirmed transition. Zero values fall back to the configured
// roster and the default travel allowance.
type ConfirmOptions struct {
	Staff         []string
	TravelMinutes int
}

// TransitionEngine validates and applies booking status changes, enforcing
// the state machine and firing the side-effect dispatcher. The pure
// allowed-transition decision lives in the entity package; the engine owns
// the repository mutation and the dispatch.
type TransitionEngine struct {
	bookings   repository.BookingRepository
	events     repository.StatusEventStore
	dispatcher *SideEffectDispatcher
	roster     []string
	allowSkip  bool
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewTransitionEngine creates a new transition engine
func NewTransitionEngine(
	bookings repository.BookingRepository,
	events repository.StatusEventStore,
	dispatcher *SideEffectDispatcher,
	roster []string,
	allowSkip bool,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *TransitionEngine {
	return &TransitionEngine{
		bookings:   bookings,
		events:     events,
		dispatcher: dispatcher,
		roster:     roster,
		allowSkip:  allowSkip,
		logger:     logger,
		metrics:    metrics,
	}
}

// Transition moves the booking with the given id to the target status.
// On success the updated booking is returned. A side-effect failure after
// the status change is committed returns both the booking and the error;
// the status change is not rolled back.
func (e *TransitionEngine) Transition(ctx context.Context, id string, target entity.Status, opts *ConfirmOptions) (*entity.Booking, error) {
	booking, _, err := e.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Re-confirming an already-confirmed booking is idempotent: no duplicate
	// move, no event, and assigned staff are never cleared. Defaults are
	// still filled in when missing.
	if target == entity.StatusConfirmed && booking.Status == entity.StatusConfirmed {
		e.applyConfirmDefaults(booking, opts)
		if err := e.bookings.MoveToScheduled(ctx, booking); err != nil {
			return nil, err
		}
		return booking, nil
	}

	if !entity.CanTransition(booking.Status, target, e.allowSkip) {
		if e.metrics != nil {
			e.metrics.TransitionsRejected.Inc()
		}
		return nil, fmt.Errorf("%w: %s -> %s (allowed: %v)",
			entity.ErrInvalidTransition, booking.Status, target, entity.AllowedFrom(booking.Status))
	}

	from := booking.Status
	booking.Status = target
	booking.UpdatedAt = time.Now().UTC()

	switch target {
	case entity.StatusConfirmed:
		e.applyConfirmDefaults(booking, opts)
		err = e.bookings.MoveToScheduled(ctx, booking)
	case entity.StatusCancelled:
		err = e.bookings.ArchiveCancelled(ctx, booking)
	default:
		err = e.bookings.Update(ctx, booking)
	}
	if err != nil {
		// Persisting the status failed; restore the in-memory copy so the
		// caller never sees a half-applied transition.
		booking.Status = from
		return nil, fmt.Errorf("apply transition %s -> %s: %w", from, target, err)
	}

	e.recordEvent(ctx, booking.ID, from, target)
	if e.metrics != nil {
		e.metrics.TransitionsApplied.WithLabelValues(string(target)).Inc()
	}
	e.logger.Info("Transition applied",
		"bookingId", booking.ID,
		"from", string(from),
		"to", string(target))

	if err := e.dispatcher.Dispatch(ctx, booking, target); err != nil {
		e.logger.Error("Side effect dispatch failed",
			"bookingId", booking.ID,
			"target", string(target),
			"error", err)
		return booking, err
	}
	return booking, nil
}

// applyConfirmDefaults assigns staff and travel allowance at confirmation.
// Already-assigned staff are never cleared.
func (e *TransitionEngine) applyConfirmDefaults(booking *entity.Booking, opts *ConfirmOptions) {
	if opts != nil && len(opts.Staff) > 0 {
		booking.Staff = opts.Staff
	} else if len(booking.Staff) == 0 {
		booking.Staff = e.defaultStaff()
	}
	if opts != nil && opts.TravelMinutes > 0 {
		booking.TravelMinutes = opts.TravelMinutes
	} else if booking.TravelMinutes == 0 {
		booking.TravelMinutes = entity.DefaultTravelMinutes
	}
}

// defaultStaff picks the first two members of the configured roster
func (e *TransitionEngine) defaultStaff() []string {
	if len(e.roster) >= 2 {
		return []string{e.roster[0], e.roster[1]}
	}
	out := make([]string, len(e.roster))
	copy(out, e.roster)
	return out
}

func (e *TransitionEngine) recordEvent(ctx context.Context, bookingID string, from, to entity.Status) {
	if e.events == nil {
		return
	}
	if err := e.events.Record(ctx, bookingID, from, to); err != nil {
		e.logger.Warn("Failed to record status event",
			"bookingId", bookingID,
			"from", string(from),
			"to", string(to),
			"error", err)
	}
}

// Delete removes a booking from whichever collection currently holds it
func (e *TransitionEngine) Delete(ctx context.Context, id string) error {
	if _, _, err := e.bookings.FindByID(ctx, id); err != nil {
		return err
	}
	return e.bookings.Delete(ctx, id)
}
