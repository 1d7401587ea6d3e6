package services

import (
	"strings"
	"time"

	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// BookingStat is one row of the per-status summary.
type BookingStat struct {
	Status       string  `json:"status"`
	Count        int64   `json:"count"`
	TotalGuests  int64   `json:"total_guests"`
	AvgPartySize float64 `json:"avg_party_size"`
}

func (s *BookingService) GetBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Table").First(&booking, id).Error; err != nil {
		return nil, notFoundOr("booking", "load booking", err)
	}
	return &booking, nil
}

// GetBookingByToken loads a booking with its table for the guest-facing detail view.
func (s *BookingService) GetBookingByToken(token string) (*models.Booking, error) {
	id, err := s.idForToken(token)
	if err != nil {
		return nil, err
	}
	return s.GetBooking(id)
}

// BookingsByDate lists one day's bookings ordered by time, then creation.
func (s *BookingService) BookingsByDate(date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Table").
		Where("date = ?", date).
		Order("time ASC").
		Order("created_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, storageErr("list bookings by date", err)
	}
	return bookings, nil
}

// SearchBookings matches term against name, email and phone, newest date first.
func (s *BookingService) SearchBookings(term string, limit, offset int) ([]models.Booking, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.Preload("Table")
	if term = strings.TrimSpace(term); term != "" {
		like := "%" + term + "%"
		q = q.Where("customer_name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var bookings []models.Booking
	err := q.Order("date DESC").Order("time DESC").Limit(limit).Offset(offset).Find(&bookings).Error
	if err != nil {
		return nil, storageErr("search bookings", err)
	}
	return bookings, nil
}

// ExportBookings lists bookings with their tables between start and end inclusive,
// optionally narrowed to one status, in date and time order.
func (s *BookingService) ExportBookings(start, end, status string) ([]models.Booking, error) {
	var problems []string
	if _, err := ParseDate(start, time.UTC); err != nil {
		problems = append(problems, "Please enter a valid start date.")
	}
	if _, err := ParseDate(end, time.UTC); err != nil {
		problems = append(problems, "Please enter a valid end date.")
	}
	if status != "" && !KnownStatus(status) {
		problems = append(problems, "Invalid booking status.")
	}
	if len(problems) > 0 {
		return nil, newValidationError(problems...)
	}

	q := s.db.Preload("Table").Where("date BETWEEN ? AND ?", start, end)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []models.Booking
	if err := q.Order("date ASC").Order("time ASC").Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, storageErr("export bookings", err)
	}
	return bookings, nil
}

// BookingStats groups bookings by status, optionally within [start, end].
func (s *BookingService) BookingStats(start, end string) ([]BookingStat, error) {
	q := s.db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(party_size), 0) AS total_guests, COALESCE(AVG(party_size), 0) AS avg_party_size")
	if start != "" && end != "" {
		q = q.Where("date BETWEEN ? AND ?", start, end)
	}

	var stats []BookingStat
	if err := q.Group("status").Order("status").Scan(&stats).Error; err != nil {
		return nil, storageErr("booking stats", err)
	}
	return stats, nil
}

// DeleteBooking removes a booking outright, disarming its hold timer.
func (s *BookingService) DeleteBooking(id uint) error {
	res := s.db.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return storageErr("delete booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "booking"}
	}
	s.holds.CancelHold(id)
	utils.InfoLogger.Printf("Booking %d deleted", id)
	return nil
}
