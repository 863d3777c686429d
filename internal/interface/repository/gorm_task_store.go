package repository

import (
	"context"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormTaskStore implements the TaskStore interface
type GormTaskStore struct {
	db *gorm.DB
}

// NewGormTaskStore creates a new GORM task store
func NewGormTaskStore(db *gorm.DB) repository.TaskStore {
	return &GormTaskStore{
		db: db,
	}
}

// Tasks GORM model for database mapping
type Tasks struct {
	ID               string    `gorm:"primaryKey;column:id"`
	BookingID        string    `gorm:"column:booking_id;index"`
	Name             string    `gorm:"column:name"`
	AllocatedMinutes int       `gorm:"column:allocated_minutes"`
	Completed        bool      `gorm:"column:completed"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

// TableName overrides the default table name
func (Tasks) TableName() string {
	return "tasks"
}

// SaveAll inserts a batch of seeded tasks
func (r *GormTaskStore) SaveAll(ctx context.Context, tasks []entity.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	models := make([]Tasks, 0, len(tasks))
	for _, t := range tasks {
		models = append(models, Tasks{
			ID:               t.ID,
			BookingID:        t.BookingID,
			Name:             t.Name,
			AllocatedMinutes: t.AllocatedMinutes,
			Completed:        t.Completed,
			CreatedAt:        t.CreatedAt,
		})
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

// ByBooking returns the task list for a booking in seeded order
func (r *GormTaskStore) ByBooking(ctx context.Context, bookingID string) ([]entity.Task, error) {
	var models []Tasks
	result := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at, id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	tasks := make([]entity.Task, 0, len(models))
	for _, m := range models {
		tasks = append(tasks, entity.Task{
			ID:               m.ID,
			BookingID:        m.BookingID,
			Name:             m.Name,
			AllocatedMinutes: m.AllocatedMinutes,
			Completed:        m.Completed,
			CreatedAt:        m.CreatedAt,
		})
	}
	return tasks, nil
}

// SetCompleted marks a task complete or incomplete
func (r *GormTaskStore) SetCompleted(ctx context.Context, taskID string, completed bool) error {
	result := r.db.WithContext(ctx).
		Model(&Tasks{}).
		Where("id = ?", taskID).
		Update("completed", completed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
