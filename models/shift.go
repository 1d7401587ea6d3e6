package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Shift struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(100);not null" json:"name"`
	Weekdays          string    `gorm:"type:varchar(20);not null" json:"weekdays"` // CSV, 0=Sunday
	StartTime         string    `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime           string    `gorm:"type:varchar(8);not null" json:"end_time"`
	SlotLengthMinutes int       `gorm:"not null;default:30" json:"slot_length_minutes"`
	BufferMinutes     int       `gorm:"not null" json:"buffer_minutes"`
	MaxPartySize      int       `gorm:"not null;default:8" json:"max_party_size"`
	Timezone          string    `gorm:"type:varchar(50);not null;default:'UTC'" json:"timezone"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

// ActiveWeekdays parses the CSV weekday column. Entries outside 0..6 are ignored.
func (s Shift) ActiveWeekdays() []time.Weekday {
	var days []time.Weekday
	for _, part := range strings.Split(s.Weekdays, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}

// RunsOn reports whether the shift is active on the given weekday.
func (s Shift) RunsOn(day time.Weekday) bool {
	for _, d := range s.ActiveWeekdays() {
		if d == day {
			return true
		}
	}
	return false
}

// FormatWeekdays renders a weekday set back into the stored CSV form, sorted and deduplicated.
func FormatWeekdays(days []int) string {
	seen := make(map[int]bool, len(days))
	var uniq []int
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		uniq = append(uniq, d)
	}
	sort.Ints(uniq)
	parts := make([]string, len(uniq))
	for i, d := range uniq {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}
