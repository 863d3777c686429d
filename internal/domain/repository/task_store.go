package repository

import (
	"context"

	"valet-booking-service/internal/domain/entity"
)

// TaskStore defines the interface for task-list persistence
type TaskStore interface {
	SaveAll(ctx context.Context, tasks []entity.Task) error
	ByBooking(ctx context.Context, bookingID string) ([]entity.Task, error)
	SetCompleted(ctx context.Context, taskID string, completed bool) error
}
