package repository

import (
	"time"

	"valet-booking-service/internal/domain/entity"
)

// DemoBookings is the example data seeded when the local cache holds nothing
// loadable, keeping development and demo environments populated.
func DemoBookings() []entity.Booking {
	nextMonday := upcoming(time.Monday)
	nextWednesday := upcoming(time.Wednesday)
	created := time.Now().UTC()

	return []entity.Booking{
		{
			ID:                 "demo-pending-1",
			Status:             entity.StatusPending,
			Customer:           "Sarah Mitchell",
			VehicleDescription: "Blue BMW 3 Series",
			PackageType:        "silver",
			Date:               nextMonday,
			Time:               "10:00",
			Location:           "14 Orchard Lane",
			Contact:            "07700 900123",
			Email:              "sarah.mitchell@example.com",
			Condition:          6,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
		{
			ID:                 "demo-pending-2",
			Status:             entity.StatusPending,
			Customer:           "James Okoro",
			VehicleDescription: "White Transit van",
			PackageType:        "bronze",
			Date:               nextWednesday,
			Time:               "14:00",
			AdditionalServices: []string{"pet-hair-removal"},
			Condition:          4,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
		{
			ID:                 "demo-scheduled-1",
			Status:             entity.StatusConfirmed,
			Customer:           "Priya Shah",
			VehicleDescription: "Black Range Rover",
			PackageType:        "gold",
			Date:               nextMonday,
			StartTime:          "09:00",
			EndTime:            "12:00",
			Staff:              []string{"Alex", "Jordan"},
			TravelMinutes:      entity.DefaultTravelMinutes,
			Condition:          7,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
	}
}

func upcoming(day time.Weekday) time.Time {
	t := time.Now().UTC()
	for t.Weekday() != day {
		t = t.AddDate(0, 0, 1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
