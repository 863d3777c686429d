package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	repo "valet-booking-service/internal/interface/repository"
)

// NewPostgresDB opens the local store and migrates its schema
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&repo.Bookings{},
		&repo.Invoices{},
		&repo.Tasks{},
		&repo.StatusEvents{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
