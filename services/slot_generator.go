package services

import (
	"iter"
	"sort"
	"time"

	"github.com/yeremiapane/table-booking/models"
)

// CandidatePoints expands a shift into raw slot offsets. A point is kept while the slot it
// opens ends no later than end minus buffer. Malformed shifts yield nothing.
func CandidatePoints(shift models.Shift) []time.Duration {
	start, err := ParseClock(shift.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseClock(shift.EndTime)
	if err != nil {
		return nil
	}
	step := time.Duration(shift.SlotLengthMinutes) * time.Minute
	if step <= 0 || end <= start {
		return nil
	}
	buffer := time.Duration(shift.BufferMinutes) * time.Minute
	if buffer < 0 {
		buffer = 0
	}

	limit := end - buffer
	var points []time.Duration
	for t := start; t+step <= limit; t += step {
		points = append(points, t)
	}
	return points
}

type SlotGenerator struct {
	clock     Clock
	settings  *SettingsService
	calendar  *ShiftCalendar
	evaluator *AvailabilityEvaluator
}

func NewSlotGenerator(clock Clock, settings *SettingsService, calendar *ShiftCalendar, evaluator *AvailabilityEvaluator) *SlotGenerator {
	return &SlotGenerator{clock: clock, settings: settings, calendar: calendar, evaluator: evaluator}
}

// GenerateSlots lazily yields the bookable HH:MM:SS points of one shift on day. Each range
// over the returned sequence re-evaluates from the start. Iteration stops at the first error.
func (g *SlotGenerator) GenerateSlots(snap Snapshot, shift models.Shift, day time.Time, partySize int) iter.Seq2[string, error] {
	policy := TimePolicy{Clock: g.clock, Location: snap.Location}
	date := day.Format(DateLayout)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, snap.Location)

	return func(yield func(string, error) bool) {
		for _, offset := range CandidatePoints(shift) {
			if !policy.Bookable(date, At(day, offset)) {
				continue
			}
			clock := FormatClock(offset)
			ok, err := g.evaluator.IsAvailable(snap, date, clock, partySize)
			if err != nil {
				yield("", err)
				return
			}
			if ok && !yield(clock, nil) {
				return
			}
		}
	}
}

// AvailableSlots unions the generated slots of every applicable shift, deduplicated and
// sorted, formatted as HH:MM.
func (g *SlotGenerator) AvailableSlots(date string, partySize int) ([]string, error) {
	slots := []string{}
	if partySize <= 0 {
		return slots, nil
	}
	snap, err := g.settings.Snapshot()
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(date, snap.Location)
	if err != nil {
		return slots, nil
	}
	shifts, err := g.calendar.ApplicableShifts(day, partySize)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, shift := range shifts {
		for clock, err := range g.GenerateSlots(snap, shift, day, partySize) {
			if err != nil {
				return nil, err
			}
			seen[clock[:5]] = true
		}
	}
	for clock := range seen {
		slots = append(slots, clock)
	}
	sort.Strings(slots)
	return slots, nil
}
