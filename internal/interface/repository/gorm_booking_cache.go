package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBookingCache implements the BookingCache interface on postgres. It is
// the durable local store: writes are synchronous and authoritative.
type GormBookingCache struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBookingCache creates a new GORM booking cache
func NewGormBookingCache(db *gorm.DB, logger logger.Logger) *GormBookingCache {
	return &GormBookingCache{
		db:     db,
		logger: logger,
	}
}

// Bookings GORM model for database mapping. Collection membership is a
// single indexed column, so a booking can only ever live in one partition.
type Bookings struct {
	ID                 string    `gorm:"primaryKey;column:id"`
	Collection         string    `gorm:"column:collection;index;not null"`
	Status             string    `gorm:"column:status;not null"`
	Customer           string    `gorm:"column:customer"`
	VehicleDescription string    `gorm:"column:vehicle_description"`
	PackageType        string    `gorm:"column:package_type"`
	Date               time.Time `gorm:"column:date;index"`
	Time               string    `gorm:"column:time"`
	StartTime          string    `gorm:"column:start_time"`
	EndTime            string    `gorm:"column:end_time"`
	Location           string    `gorm:"column:location"`
	Contact            string    `gorm:"column:contact"`
	Email              string    `gorm:"column:email"`
	Notes              string    `gorm:"column:notes;type:text"`
	Staff              string    `gorm:"column:staff;type:text"`
	TravelMinutes      int       `gorm:"column:travel_minutes"`
	AdditionalServices string    `gorm:"column:additional_services;type:text"`
	Condition          int       `gorm:"column:condition"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

// TableName overrides the default table name
func (Bookings) TableName() string {
	return "bookings"
}

func toBookingModel(b *entity.Booking, col entity.Collection) Bookings {
	return Bookings{
		ID:                 b.ID,
		Collection:         string(col),
		Status:             string(b.Status),
		Customer:           b.Customer,
		VehicleDescription: b.VehicleDescription,
		PackageType:        b.PackageType,
		Date:               b.Date,
		Time:               b.Time,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Location:           b.Location,
		Contact:            b.Contact,
		Email:              b.Email,
		Notes:              b.Notes,
		Staff:              toListColumn(b.Staff),
		TravelMinutes:      b.TravelMinutes,
		AdditionalServices: toListColumn(b.AdditionalServices),
		Condition:          b.Condition,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func toBookingEntity(m Bookings) entity.Booking {
	return entity.Booking{
		ID:                 m.ID,
		Status:             entity.Status(m.Status),
		Customer:           m.Customer,
		VehicleDescription: m.VehicleDescription,
		PackageType:        m.PackageType,
		Date:               m.Date,
		Time:               m.Time,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		Location:           m.Location,
		Contact:            m.Contact,
		Email:              m.Email,
		Notes:              m.Notes,
		Staff:              fromListColumn(m.Staff),
		TravelMinutes:      m.TravelMinutes,
		AdditionalServices: fromListColumn(m.AdditionalServices),
		Condition:          m.Condition,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// Lists are stored as JSON documents so values keep their exact content;
// they are only ever read back as a whole.
func toListColumn(values []string) string {
	if len(values) == 0 {
		return ""
	}
	encoded, _ := json.Marshal(values)
	return string(encoded)
}

func fromListColumn(column string) []string {
	if column == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(column), &values); err != nil {
		return nil
	}
	return values
}

// ByCollection returns the valid bookings in one collection, ordered by date
// then slot time. Malformed rows are skipped.
func (r *GormBookingCache) ByCollection(ctx context.Context, col entity.Collection) ([]entity.Booking, error) {
	var rows []Bookings
	result := r.db.WithContext(ctx).
		Where("collection = ?", string(col)).
		Order("date, start_time, time, id").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	bookings := make([]entity.Booking, 0, len(rows))
	for _, row := range rows {
		b := toBookingEntity(row)
		b.Normalize()
		if !b.Validate() {
			r.logger.Warn("Skipping malformed cached booking", "bookingId", row.ID)
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// FindByID searches the unscheduled and scheduled collections. The cancelled
// archive is not searched; archived bookings are gone from the live view.
func (r *GormBookingCache) FindByID(ctx context.Context, id string) (*entity.Booking, entity.Collection, error) {
	var row Bookings
	result := r.db.WithContext(ctx).
		Where("id = ? AND collection IN ?", id, []string{
			string(entity.CollectionUnscheduled),
			string(entity.CollectionScheduled),
		}).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, "", entity.ErrNotFound
		}
		return nil, "", result.Error
	}

	b := toBookingEntity(row)
	b.Normalize()
	if !b.Validate() {
		return nil, "", entity.ErrNotFound
	}
	return &b, entity.Collection(row.Collection), nil
}

// Put upserts a booking into the given collection. Because id is the primary
// key, putting a booking that already lives elsewhere moves it rather than
// duplicating it.
func (r *GormBookingCache) Put(ctx context.Context, booking *entity.Booking, col entity.Collection) error {
	model := toBookingModel(booking, col)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model).Error
}

// Move reassigns a booking's collection without touching its other fields
func (r *GormBookingCache) Move(ctx context.Context, id string, to entity.Collection) error {
	return r.db.WithContext(ctx).
		Model(&Bookings{}).
		Where("id = ?", id).
		Update("collection", string(to)).Error
}

// Delete removes a booking from the live collections. Archive rows are kept.
func (r *GormBookingCache) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND collection IN ?", id, []string{
			string(entity.CollectionUnscheduled),
			string(entity.CollectionScheduled),
		}).
		Delete(&Bookings{}).Error
}

// Bootstrap discards malformed rows, repairs rows filed under the wrong
// collection and, when nothing loadable remains, seeds the demo booking set
// so a fresh or corrupted cache is distinguishable from a deliberately
// emptied one.
func (r *GormBookingCache) Bootstrap(ctx context.Context) error {
	var rows []Bookings
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return err
	}

	valid := 0
	for _, row := range rows {
		b := toBookingEntity(row)
		b.Normalize()
		if !b.Validate() {
			r.logger.Warn("Discarding malformed cached booking", "bookingId", row.ID)
			if err := r.db.WithContext(ctx).Where("id = ?", row.ID).Delete(&Bookings{}).Error; err != nil {
				return err
			}
			continue
		}
		valid++
		if want := entity.CollectionFor(b.Status); row.Collection != string(want) {
			r.logger.Warn("Repairing booking collection membership",
				"bookingId", row.ID,
				"from", row.Collection,
				"to", string(want))
			if err := r.Move(ctx, row.ID, want); err != nil {
				return err
			}
		}
	}
	if valid > 0 {
		return nil
	}

	r.logger.Info("Local cache empty, seeding demo bookings")
	for _, b := range DemoBookings() {
		booking := b
		if err := r.Put(ctx, &booking, entity.CollectionFor(b.Status)); err != nil {
			return err
		}
	}
	return nil
}
