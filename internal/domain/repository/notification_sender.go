package repository

import (
	"context"

	"valet-booking-service/internal/domain/entity"
)

// NotificationSender delivers customer-facing messages for a booking.
// Delivery failure is logged by the caller, never fatal to a transition.
type NotificationSender interface {
	Send(ctx context.Context, booking *entity.Booking, kind entity.NotificationKind) error
}

// StatusEventStore records applied transitions as an append-only audit trail
type StatusEventStore interface {
	Record(ctx context.Context, bookingID string, from, to entity.Status) error
	ByBooking(ctx context.Context, bookingID string) ([]entity.StatusEvent, error)
}
