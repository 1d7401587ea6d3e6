package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
)

func clocks(points []time.Duration) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = FormatClock(p)[:5]
	}
	return out
}

func TestCandidatePointsRespectBuffer(t *testing.T) {
	got := clocks(CandidatePoints(lunchShift()))
	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "14:00"}, got)
}

func TestCandidatePointsMalformedShift(t *testing.T) {
	tests := []struct {
		name  string
		shift func(*models.Shift)
	}{
		{"zero slot length", func(s *models.Shift) { s.SlotLengthMinutes = 0 }},
		{"negative slot length", func(s *models.Shift) { s.SlotLengthMinutes = -30 }},
		{"end equals start", func(s *models.Shift) { s.EndTime = s.StartTime }},
		{"end before start", func(s *models.Shift) { s.StartTime, s.EndTime = "15:00:00", "12:00:00" }},
		{"bad start", func(s *models.Shift) { s.StartTime = "noon" }},
		{"buffer swallows shift", func(s *models.Shift) { s.BufferMinutes = 180 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := lunchShift()
			tt.shift(&shift)
			assert.Empty(t, CandidatePoints(shift))
		})
	}
}

func TestCandidatePointsNeverPassEndMinusBuffer(t *testing.T) {
	for _, slot := range []int{10, 15, 20, 30, 45, 60, 90} {
		for _, buffer := range []int{0, 5, 15, 30, 45} {
			shift := models.Shift{StartTime: "11:00", EndTime: "15:10", SlotLengthMinutes: slot, BufferMinutes: buffer}
			start, _ := ParseClock(shift.StartTime)
			end, _ := ParseClock(shift.EndTime)
			limit := end - time.Duration(buffer)*time.Minute
			for _, p := range CandidatePoints(shift) {
				assert.GreaterOrEqual(t, p, start)
				assert.LessOrEqual(t, p+time.Duration(slot)*time.Minute, limit, "slot=%d buffer=%d point=%s", slot, buffer, FormatClock(p))
			}
		}
	}
}

func TestAvailableSlotsLunchScenario(t *testing.T) {
	f := newFixture(t, 2, 4, 6)
	f.addShift(t, lunchShift())

	slots, err := f.slots.AvailableSlots(monday, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "14:00"}, slots)
}

func TestAvailableSlotsAppliesSameDayLeadTime(t *testing.T) {
	f := newFixture(t, 2, 4, 6)
	f.addShift(t, lunchShift())
	f.clock.Advance(3*time.Hour + 15*time.Minute) // 11:15, so only slots after 12:15 qualify

	slots, err := f.slots.AvailableSlots(monday, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:30", "13:00", "13:30", "14:00"}, slots)

	// Tomorrow carries no lead time.
	slots, err = f.slots.AvailableSlots(tuesday, 4)
	require.NoError(t, err)
	assert.Len(t, slots, 5)
}

func TestAvailableSlotsPastDateIsEmpty(t *testing.T) {
	f := newFixture(t, 4)
	f.addShift(t, lunchShift())
	f.clock.Advance(24 * time.Hour)

	slots, err := f.slots.AvailableSlots(monday, 2)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsFiltersShifts(t *testing.T) {
	f := newFixture(t, 4, 10)
	f.addShift(t, lunchShift())

	slots, err := f.slots.AvailableSlots(saturday, 2)
	require.NoError(t, err)
	assert.Empty(t, slots, "lunch does not run on Saturday")

	slots, err = f.slots.AvailableSlots(monday, 9)
	require.NoError(t, err)
	assert.Empty(t, slots, "party above the shift maximum")
}

func TestAvailableSlotsRejectsBadInput(t *testing.T) {
	f := newFixture(t, 4)
	f.addShift(t, lunchShift())

	for _, date := range []string{"", "2030-02-30", "tomorrow"} {
		slots, err := f.slots.AvailableSlots(date, 2)
		require.NoError(t, err)
		assert.Empty(t, slots, date)
	}
	slots, err := f.slots.AvailableSlots(monday, 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestAvailableSlotsUnionsOverlappingShifts(t *testing.T) {
	f := newFixture(t, 4)
	f.addShift(t, models.Shift{Name: "Late lunch", Weekdays: "1", StartTime: "13:00", EndTime: "15:00", SlotLengthMinutes: 30, MaxPartySize: 8})
	f.addShift(t, models.Shift{Name: "Early lunch", Weekdays: "1", StartTime: "12:00", EndTime: "14:00", SlotLengthMinutes: 30, MaxPartySize: 8})

	slots, err := f.slots.AvailableSlots(monday, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "14:00", "14:30"}, slots)
}

func TestAvailableSlotsSkipsFullSlots(t *testing.T) {
	f := newFixture(t, 2)
	f.addShift(t, lunchShift())
	f.seedBooking(t, monday, "12:30:00", 2, models.BookingStatusConfirmed, uintPtr(f.tables[0].ID))
	f.seedBooking(t, monday, "13:00:00", 2, models.BookingStatusCancelled, uintPtr(f.tables[0].ID))

	slots, err := f.slots.AvailableSlots(monday, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00", "13:00", "13:30", "14:00"}, slots)
}

func TestGenerateSlotsIsRestartable(t *testing.T) {
	f := newFixture(t, 4)
	shift := f.addShift(t, dinnerShift())
	day, err := ParseDate(tuesday, time.UTC)
	require.NoError(t, err)

	seq := f.slots.GenerateSlots(f.snapshot(t), shift, day, 2)
	collect := func() []string {
		var out []string
		for clock, err := range seq {
			require.NoError(t, err)
			out = append(out, clock)
		}
		return out
	}

	first := collect()
	assert.Equal(t, []string{"17:00:00", "18:00:00", "19:00:00", "20:00:00"}, first)
	assert.Equal(t, first, collect())

	// Stopping early is honoured.
	var taken []string
	for clock := range seq {
		taken = append(taken, clock)
		if len(taken) == 2 {
			break
		}
	}
	assert.Equal(t, first[:2], taken)
}
