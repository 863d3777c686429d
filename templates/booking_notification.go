// Package templates builds the customer-facing message text sent for
// booking lifecycle notifications.
package templates

import (
	"fmt"
	"strings"

	"valet-booking-service/internal/domain/entity"
)

// MessageFor renders the notification text for a booking and kind
func MessageFor(booking *entity.Booking, kind entity.NotificationKind) string {
	switch kind {
	case entity.NotificationArrival:
		return arrivalMessage(booking)
	case entity.NotificationFinished:
		return finishedMessage(booking)
	default:
		return fmt.Sprintf("Update on your valeting booking %s.", booking.ID)
	}
}

func arrivalMessage(booking *entity.Booking) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hi %s, your valeting team has arrived", firstName(booking.Customer)))
	if booking.Location != "" {
		sb.WriteString(fmt.Sprintf(" at %s", booking.Location))
	}
	sb.WriteString(".")
	if booking.VehicleDescription != "" {
		sb.WriteString(fmt.Sprintf(" We are starting the inspection of your %s now.", booking.VehicleDescription))
	}
	return sb.String()
}

func finishedMessage(booking *entity.Booking) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hi %s, the work on", firstName(booking.Customer)))
	if booking.VehicleDescription != "" {
		sb.WriteString(fmt.Sprintf(" your %s", booking.VehicleDescription))
	} else {
		sb.WriteString(" your vehicle")
	}
	sb.WriteString(" is finished. Your invoice is on its way. Thank you for choosing us!")
	return sb.String()
}

// firstName keeps greetings short; falls back to a generic salutation when
// the customer field is empty.
func firstName(customer string) string {
	fields := strings.Fields(customer)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
