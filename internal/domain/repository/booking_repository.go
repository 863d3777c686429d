package repository

import (
	"context"

	"valet-booking-service/internal/domain/entity"
)

// BookingRepository is the port the transition engine mutates bookings
// through. Collection membership is an enforced invariant: a pending booking
// lives only in the unscheduled collection, every other live status only in
// the scheduled one, and a booking is never present in both.
type BookingRepository interface {
	// Load returns both collections, reconciled with the remote store when
	// one is reachable.
	Load(ctx context.Context) (unscheduled, scheduled []entity.Booking, err error)
	Unscheduled(ctx context.Context) ([]entity.Booking, error)
	Scheduled(ctx context.Context) ([]entity.Booking, error)
	// FindByID searches both collections. Returns entity.ErrNotFound when
	// the id is absent from each.
	FindByID(ctx context.Context, id string) (*entity.Booking, entity.Collection, error)
	// CreateUnscheduled persists a new pending booking.
	CreateUnscheduled(ctx context.Context, booking *entity.Booking) error
	// Update rewrites a booking in place inside whichever collection holds it.
	Update(ctx context.Context, booking *entity.Booking) error
	// MoveToScheduled moves a booking from the unscheduled to the scheduled
	// collection. Moving an already-scheduled booking is a no-op.
	MoveToScheduled(ctx context.Context, booking *entity.Booking) error
	// ArchiveCancelled moves a booking into the append-only cancelled archive.
	ArchiveCancelled(ctx context.Context, booking *entity.Booking) error
	// Delete removes a booking from whichever collection currently holds it.
	Delete(ctx context.Context, id string) error
}

// BookingCache is the durable local store. It is the source of truth: every
// write is synchronous and authoritative.
type BookingCache interface {
	ByCollection(ctx context.Context, col entity.Collection) ([]entity.Booking, error)
	FindByID(ctx context.Context, id string) (*entity.Booking, entity.Collection, error)
	Put(ctx context.Context, booking *entity.Booking, col entity.Collection) error
	Move(ctx context.Context, id string, to entity.Collection) error
	Delete(ctx context.Context, id string) error
}

// BookingMirror is the remote store the local cache is mirrored to on a
// best-effort basis. Every operation is expected to be idempotent so a later
// retry for the same booking converges by id.
type BookingMirror interface {
	FetchAll(ctx context.Context) ([]entity.Booking, error)
	Upsert(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id string) error
	UpsertInvoice(ctx context.Context, invoice *entity.Invoice) error
}
