package usecase

import (
	"sort"
	"time"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/pkg/timeslot"
)

// DaySchedule is one day's slice of the weekly view
type DaySchedule struct {
	Date     time.Time        `json:"date"`
	Bookings []entity.Booking `json:"bookings"`
}

// ScheduleProjector derives read-only views from the scheduled collection.
// Pure and stateless: callers pass in the current scheduled bookings.
type ScheduleProjector struct{}

// ByDay returns the scheduled bookings falling on the given calendar date,
// ordered by slot start time.
func (ScheduleProjector) ByDay(scheduled []entity.Booking, date time.Time) []entity.Booking {
	out := make([]entity.Booking, 0)
	for _, b := range scheduled {
		if b.SameDay(date) {
			out = append(out, b)
		}
	}
	sortBySlot(out)
	return out
}

// ByWeek buckets the scheduled bookings into the seven days of the week
// containing anchor, Monday first.
func (p ScheduleProjector) ByWeek(scheduled []entity.Booking, anchor time.Time) []DaySchedule {
	start := timeslot.BeginningOfWeek(anchor)
	week := make([]DaySchedule, 7)
	for i := range week {
		day := start.AddDate(0, 0, i)
		week[i] = DaySchedule{
			Date:     day,
			Bookings: p.ByDay(scheduled, day),
		}
	}
	return week
}

// ByStaff groups the scheduled bookings by assigned staff member. A booking
// with two assignees appears under both names.
func (ScheduleProjector) ByStaff(scheduled []entity.Booking) map[string][]entity.Booking {
	out := make(map[string][]entity.Booking)
	for _, b := range scheduled {
		for _, member := range b.Staff {
			out[member] = append(out[member], b)
		}
	}
	for member := range out {
		sortBySlot(out[member])
	}
	return out
}

// sortBySlot orders bookings by date, then slot start, then id for a stable
// display order. Bookings without a usable clock time sort last in their day.
func sortBySlot(bookings []entity.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.Before(bookings[j].Date)
		}
		si, sj := slotStart(bookings[i]), slotStart(bookings[j])
		if si != sj {
			return si < sj
		}
		return bookings[i].ID < bookings[j].ID
	})
}

func slotStart(b entity.Booking) int {
	w, err := timeslot.WindowFrom(b.StartTime, b.EndTime, b.Time)
	if err != nil {
		return 24 * 60
	}
	return w.Start
}
