package services

import "github.com/yeremiapane/table-booking/models"

var transitions = map[string][]string{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusExpired,
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusCancelled,
		models.BookingStatusSeated,
		models.BookingStatusNoShow,
	},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func KnownStatus(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled,
		models.BookingStatusExpired, models.BookingStatusSeated, models.BookingStatusNoShow:
		return true
	}
	return false
}
