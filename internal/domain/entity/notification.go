package entity

// NotificationKind identifies the customer-facing message triggered by a
// transition.
type NotificationKind string

const (
	NotificationArrival  NotificationKind = "arrival"
	NotificationFinished NotificationKind = "finished"
)

// StatusEvent is an append-only audit record of an applied transition
type StatusEvent struct {
	ID        uint   `json:"id"`
	BookingID string `json:"bookingId"`
	From      Status `json:"from"`
	To        Status `json:"to"`
}
