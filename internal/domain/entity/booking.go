package entity

import (
	"strings"
	"time"
)

// DefaultTravelMinutes is assigned at confirmation when the caller supplies
// no travel allowance.
const DefaultTravelMinutes = 15

// Collection identifies which logical partition holds a booking
type Collection string

const (
	CollectionUnscheduled Collection = "unscheduled"
	CollectionScheduled   Collection = "scheduled"
	CollectionCancelled   Collection = "cancelled"
)

// Booking is the central entity of the valeting lifecycle
type Booking struct {
	ID                 string     `json:"id" bson:"_id"`
	Status             Status     `json:"status" bson:"status"`
	Customer           string     `json:"customer" bson:"customer"`
	VehicleDescription string     `json:"vehicleDescription" bson:"vehicleDescription"`
	PackageType        string     `json:"packageType" bson:"packageType"`
	Date               time.Time  `json:"date" bson:"date"`
	Time               string     `json:"time,omitempty" bson:"time,omitempty"`
	StartTime          string     `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime            string     `json:"endTime,omitempty" bson:"endTime,omitempty"`
	Location           string     `json:"location,omitempty" bson:"location,omitempty"`
	Contact            string     `json:"contact,omitempty" bson:"contact,omitempty"`
	Email              string     `json:"email,omitempty" bson:"email,omitempty"`
	Notes              string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Staff              []string   `json:"staff,omitempty" bson:"staff,omitempty"`
	TravelMinutes      int        `json:"travelMinutes" bson:"travelMinutes"`
	AdditionalServices []string   `json:"additionalServices,omitempty" bson:"additionalServices,omitempty"`
	Condition          int        `json:"condition" bson:"condition"`
	CreatedAt          time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Normalize coerces boundary values into canonical form: the date is
// truncated to its calendar day and the condition score clamped to 1..10.
func (b *Booking) Normalize() {
	b.Date = time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, time.UTC)
	if b.Condition < 1 {
		b.Condition = 1
	}
	if b.Condition > 10 {
		b.Condition = 10
	}
	if b.TravelMinutes < 0 {
		b.TravelMinutes = 0
	}
}

// Validate reports whether a record loaded from storage is usable. Records
// failing this check are treated as malformed and discarded at the boundary.
func (b *Booking) Validate() bool {
	if strings.TrimSpace(b.ID) == "" {
		return false
	}
	if !b.Status.IsValid() {
		return false
	}
	if b.Date.IsZero() {
		return false
	}
	return true
}

// SameDay reports whether the booking falls on the given calendar date
func (b *Booking) SameDay(date time.Time) bool {
	return b.Date.Year() == date.Year() &&
		b.Date.Month() == date.Month() &&
		b.Date.Day() == date.Day()
}

// CollectionFor derives the partition a booking with this status belongs to
func CollectionFor(s Status) Collection {
	switch {
	case s == StatusCancelled:
		return CollectionCancelled
	case s.IsScheduled():
		return CollectionScheduled
	default:
		return CollectionUnscheduled
	}
}
