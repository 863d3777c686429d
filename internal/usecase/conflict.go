package usecase

import (
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/pkg/timeslot"
)

// HasConflict reports whether any scheduled booking already occupies the
// given date and time-of-day slot. Only the scheduled collection is
// consulted; pending bookings never block a slot.
//
// Slot windows come from startTime/endTime when both are present, otherwise
// the point time is widened to a two-hour occupancy. Windows are half-open,
// so a booking ending exactly when the next starts does not conflict. A
// scheduled booking with no usable clock time occupies its whole day.
func HasConflict(date time.Time, clock string, scheduled []entity.Booking) bool {
	candidate, candidateErr := timeslot.WindowFrom("", "", clock)
	for _, b := range scheduled {
		if !b.SameDay(date) {
			continue
		}
		if candidateErr != nil {
			// Date-only probe: any booking on the day conflicts.
			return true
		}
		window, err := timeslot.WindowFrom(b.StartTime, b.EndTime, b.Time)
		if err != nil {
			return true
		}
		if candidate.Overlaps(window) {
			return true
		}
	}
	return false
}
