package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:30am", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.clock)
		if tc.wantErr {
			assert.Error(t, err, tc.clock)
			continue
		}
		require.NoError(t, err, tc.clock)
		assert.Equal(t, tc.minutes, got, tc.clock)
	}
}

func TestWindowFromExplicitBounds(t *testing.T) {
	w, err := WindowFrom("09:00", "11:30", "")
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 540, End: 690}, w)
}

func TestWindowFromPointFallback(t *testing.T) {
	w, err := WindowFrom("", "", "14:00")
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 840, End: 960}, w, "point time occupies the default two hours")

	// An incomplete pair degrades to the point time too.
	w, err = WindowFrom("09:00", "", "14:00")
	require.NoError(t, err)
	assert.Equal(t, 840, w.Start)
}

func TestWindowFromNoTime(t *testing.T) {
	_, err := WindowFrom("", "", "")
	assert.Error(t, err)

	_, err = WindowFrom("bad", "11:00", "")
	assert.Error(t, err)
}

func TestOverlapsHalfOpen(t *testing.T) {
	morning := Window{Start: 540, End: 660}  // 09:00-11:00
	midday := Window{Start: 660, End: 780}   // 11:00-13:00
	overlap := Window{Start: 600, End: 720}  // 10:00-12:00

	assert.False(t, morning.Overlaps(midday), "adjacent windows do not conflict")
	assert.False(t, midday.Overlaps(morning))
	assert.True(t, morning.Overlaps(overlap))
	assert.True(t, overlap.Overlaps(midday))
	assert.True(t, morning.Overlaps(morning))
}

func TestBeginningOfWeekIsMonday(t *testing.T) {
	wed := time.Date(2024, 9, 18, 15, 42, 0, 0, time.UTC)
	monday := BeginningOfWeek(wed)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC), monday)

	sunday := time.Date(2024, 9, 22, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, BeginningOfWeek(sunday), "sunday belongs to the week started the previous monday")
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 9, 18, 8, 0, 0, 0, time.UTC)
	night := time.Date(2024, 9, 18, 23, 30, 0, 0, time.UTC)
	next := time.Date(2024, 9, 19, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, next))
}
