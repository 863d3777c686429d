package repository

import (
	"context"

	"valet-booking-service/internal/domain/entity"
)

// InvoiceStore defines the interface for invoice persistence
type InvoiceStore interface {
	Upsert(ctx context.Context, invoice *entity.Invoice) error
	// FindByBookingID returns the invoice tied to a booking id, or
	// entity.ErrNotFound when none exists yet.
	FindByBookingID(ctx context.Context, bookingID string) (*entity.Invoice, error)
	All(ctx context.Context) ([]entity.Invoice, error)
}
