package entity

import "time"

// Task is a single completable work item seeded from a booking's package
// definition when work begins.
type Task struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"bookingId"`
	Name             string    `json:"name"`
	AllocatedMinutes int       `json:"allocatedTime"`
	Completed        bool      `json:"completed"`
	CreatedAt        time.Time `json:"createdAt"`
}

// TaskSpec is a catalog entry describing a task before it is materialized
// for a concrete booking.
type TaskSpec struct {
	Name            string
	DurationMinutes int
}
