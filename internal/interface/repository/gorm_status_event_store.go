package repository

import (
	"context"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormStatusEventStore implements the StatusEventStore interface
type GormStatusEventStore struct {
	db *gorm.DB
}

// NewGormStatusEventStore creates a new GORM status event store
func NewGormStatusEventStore(db *gorm.DB) repository.StatusEventStore {
	return &GormStatusEventStore{
		db: db,
	}
}

// StatusEvents GORM model for database mapping. Append-only.
type StatusEvents struct {
	gorm.Model
	BookingID string `gorm:"column:booking_id;index"`
	From      string `gorm:"column:from_status"`
	To        string `gorm:"column:to_status"`
}

// TableName overrides the default table name
func (StatusEvents) TableName() string {
	return "booking_status_events"
}

// Record appends a transition event
func (r *GormStatusEventStore) Record(ctx context.Context, bookingID string, from, to entity.Status) error {
	model := StatusEvents{
		BookingID: bookingID,
		From:      string(from),
		To:        string(to),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// ByBooking returns a booking's transition history, oldest first
func (r *GormStatusEventStore) ByBooking(ctx context.Context, bookingID string) ([]entity.StatusEvent, error) {
	var models []StatusEvents
	result := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	events := make([]entity.StatusEvent, 0, len(models))
	for _, m := range models {
		events = append(events, entity.StatusEvent{
			ID:        m.ID,
			BookingID: m.BookingID,
			From:      entity.Status(m.From),
			To:        entity.Status(m.To),
		})
	}
	return events, nil
}
