package services

import (
	"fmt"
	"regexp"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// SameDayLeadTime is the minimum notice for a booking made for today.
	SameDayLeadTime = 60 * time.Minute
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])(:([0-5][0-9]))?$`)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// TimePolicy resolves "now" in the business timezone.
type TimePolicy struct {
	Clock    Clock
	Location *time.Location
}

func (p TimePolicy) Now() time.Time {
	return p.Clock.Now().In(p.Location)
}

func (p TimePolicy) Today() string {
	return p.Now().Format(DateLayout)
}

// LeadTime is the notice required before a slot on the given date.
func (p TimePolicy) LeadTime(date string) time.Duration {
	if date == p.Today() {
		return SameDayLeadTime
	}
	return 0
}

// Bookable reports whether a slot instant lies strictly after now plus the lead time.
func (p TimePolicy) Bookable(date string, at time.Time) bool {
	return at.After(p.Now().Add(p.LeadTime(date)))
}

// ParseDate accepts only real calendar dates in YYYY-MM-DD form.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, err
	}
	if d.Format(DateLayout) != value {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return d, nil
}

// ParseClock parses HH:MM or HH:MM:SS into an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	if !clockPattern.MatchString(value) {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if len(value) == 5 {
		value += ":00"
	}
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
}

// NormalizeClock rewrites HH:MM as HH:MM:SS.
func NormalizeClock(value string) (string, error) {
	offset, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return FormatClock(offset), nil
}

func FormatClock(offset time.Duration) string {
	h := int(offset / time.Hour)
	m := int(offset % time.Hour / time.Minute)
	s := int(offset % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// At places a time-of-day offset on the given calendar day in the day's location.
func At(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int(offset % time.Hour / time.Minute)
	s := int(offset % time.Minute / time.Second)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, day.Location())
}
