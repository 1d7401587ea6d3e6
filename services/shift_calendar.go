package services

import (
	"sort"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"gorm.io/gorm"
)

type ShiftCalendar struct {
	db *gorm.DB
}

func NewShiftCalendar(db *gorm.DB) *ShiftCalendar {
	return &ShiftCalendar{db: db}
}

// ApplicableShifts returns the shifts running on date's weekday that accept partySize,
// ordered by start time.
func (c *ShiftCalendar) ApplicableShifts(date time.Time, partySize int) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := c.db.Where("max_party_size >= ?", partySize).Find(&shifts).Error; err != nil {
		return nil, storageErr("load shifts", err)
	}
	return FilterShifts(shifts, date.Weekday(), partySize), nil
}

// FilterShifts applies the weekday and party-size rules to already loaded shifts.
func FilterShifts(shifts []models.Shift, day time.Weekday, partySize int) []models.Shift {
	var out []models.Shift
	for _, s := range shifts {
		if s.MaxPartySize >= partySize && s.RunsOn(day) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := ParseClock(out[i].StartTime)
		b, _ := ParseClock(out[j].StartTime)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}
