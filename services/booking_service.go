package services

import (
	"time"

	"github.com/yeremiapane/table-booking/events"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

// EventPublisher receives lifecycle events once the change is committed.
type EventPublisher interface {
	Publish(events.Event)
}

// HoldScheduler arms and disarms the one-shot expiry of a pending booking.
type HoldScheduler interface {
	ScheduleHold(bookingID uint, at time.Time)
	CancelHold(bookingID uint)
}

type noopHolds struct{}

func (noopHolds) ScheduleHold(uint, time.Time) {}
func (noopHolds) CancelHold(uint)              {}

type BookingService struct {
	db       *gorm.DB
	clock    Clock
	settings *SettingsService
	reserver *Reserver
	events   EventPublisher
	holds    HoldScheduler
}

func NewBookingService(db *gorm.DB, clock Clock, settings *SettingsService, reserver *Reserver, publisher EventPublisher) *BookingService {
	return &BookingService{
		db:       db,
		clock:    clock,
		settings: settings,
		reserver: reserver,
		events:   publisher,
		holds:    noopHolds{},
	}
}

func (s *BookingService) SetHoldScheduler(h HoldScheduler) {
	s.holds = h
}

// CreateBooking validates and stores a booking. Guest bookings go through admission and
// start pending with a hold timer; staff bookings start confirmed and skip admission.
func (s *BookingService) CreateBooking(in BookingInput, isStaff bool) (*models.Booking, error) {
	snap, err := s.settings.Snapshot()
	if err != nil {
		return nil, err
	}
	policy := TimePolicy{Clock: s.clock, Location: snap.Location}

	in = in.trimmed()
	if problems := validateBooking(in, snap, policy.Today(), isStaff); len(problems) > 0 {
		return nil, newValidationError(problems...)
	}
	clock, _ := NormalizeClock(in.Time)

	token, err := NewConfirmationToken()
	if err != nil {
		return nil, storageErr("generate token", err)
	}

	now := s.clock.Now().UTC()
	booking := &models.Booking{
		CustomerName:      in.CustomerName,
		Email:             in.Email,
		Phone:             in.Phone,
		Date:              in.Date,
		Time:              clock,
		PartySize:         in.PartySize,
		Notes:             in.Notes,
		ConfirmationToken: token,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if isStaff {
		booking.Status = models.BookingStatusConfirmed
		if err := s.reserver.Place(snap.Policy(), booking); err != nil {
			return nil, err
		}
	} else {
		booking.Status = models.BookingStatusPending
		admission, err := s.reserver.TryReserve(snap.Policy(), booking)
		if err != nil {
			return nil, err
		}
		if admission == Rejected {
			utils.InfoLogger.Printf("Booking rejected: %s %s party=%d policy=%s", booking.Date, booking.Time, booking.PartySize, snap.Policy())
			return nil, ErrNotAvailable
		}
		s.holds.ScheduleHold(booking.ID, now.Add(snap.HoldTimeout))
	}

	utils.InfoLogger.Printf("Booking %d created (status=%s, staff=%t)", booking.ID, booking.Status, isStaff)
	s.emit(events.BookingCreated, booking)
	return booking, nil
}

// ConfirmBooking moves a pending booking to confirmed, assigning a table under the
// per-table policy.
func (s *BookingService) ConfirmBooking(id uint) (*models.Booking, error) {
	snap, err := s.settings.Snapshot()
	if err != nil {
		return nil, err
	}
	booking, err := s.reserver.Confirm(snap.Policy(), id, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.holds.CancelHold(id)
	utils.InfoLogger.Printf("Booking %d confirmed", id)
	s.emit(events.BookingConfirmed, booking)
	return booking, nil
}

func (s *BookingService) ConfirmBookingByToken(token string) (*models.Booking, error) {
	id, err := s.idForToken(token)
	if err != nil {
		return nil, err
	}
	return s.ConfirmBooking(id)
}

// CancelBooking cancels a pending or confirmed booking.
func (s *BookingService) CancelBooking(id uint) (*models.Booking, error) {
	booking, err := s.transition(id, []string{models.BookingStatusPending, models.BookingStatusConfirmed}, models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.holds.CancelHold(id)
	utils.InfoLogger.Printf("Booking %d cancelled", id)
	s.emit(events.BookingCancelled, booking)
	return booking, nil
}

func (s *BookingService) CancelBookingByToken(token string) (*models.Booking, error) {
	id, err := s.idForToken(token)
	if err != nil {
		return nil, err
	}
	return s.CancelBooking(id)
}

// UpdateStatus applies any legal transition. Confirmation is routed through
// ConfirmBooking so table assignment still happens.
func (s *BookingService) UpdateStatus(id uint, status string) (*models.Booking, error) {
	if !KnownStatus(status) {
		return nil, newValidationError("Invalid booking status.")
	}
	var current models.Booking
	if err := s.db.First(&current, id).Error; err != nil {
		return nil, notFoundOr("booking", "load booking", err)
	}
	if !CanTransition(current.Status, status) {
		return nil, &InvalidStatusTransitionError{From: current.Status, To: status}
	}
	if status == models.BookingStatusConfirmed {
		return s.ConfirmBooking(id)
	}

	booking, err := s.transition(id, []string{current.Status}, status)
	if err != nil {
		return nil, err
	}
	if current.Status == models.BookingStatusPending {
		s.holds.CancelHold(id)
	}
	utils.InfoLogger.Printf("Booking %d status %s -> %s", id, current.Status, status)
	s.emit(events.ForStatus(status), booking)
	return booking, nil
}

// ExpireBooking expires one booking if it is still pending and its hold has run out under
// the current hold timeout. It reports whether it did. A hold lengthened after the one-shot
// was armed is left for the sweep.
func (s *BookingService) ExpireBooking(id uint) (bool, error) {
	snap, err := s.settings.Snapshot()
	if err != nil {
		return false, err
	}
	now := s.clock.Now().UTC()
	cutoff := now.Add(-snap.HoldTimeout)
	res := s.db.Model(&models.Booking{}).
		Where("id = ? AND status = ? AND created_at <= ?", id, models.BookingStatusPending, cutoff).
		Updates(map[string]interface{}{"status": models.BookingStatusExpired, "updated_at": now})
	if res.Error != nil {
		return false, storageErr("expire booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	s.emitByID(id)
	return true, nil
}

// SweepExpired expires every pending booking older than the hold timeout. Each row is a
// separate compare-and-swap on status, so a concurrent confirmation always wins.
func (s *BookingService) SweepExpired() (int, error) {
	snap, err := s.settings.Snapshot()
	if err != nil {
		return 0, err
	}
	now := s.clock.Now().UTC()
	cutoff := now.Add(-snap.HoldTimeout)

	var ids []uint
	err = s.db.Model(&models.Booking{}).
		Where("status = ? AND created_at < ?", models.BookingStatusPending, cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, storageErr("find expired bookings", err)
	}

	expired := 0
	for _, id := range ids {
		res := s.db.Model(&models.Booking{}).
			Where("id = ? AND status = ? AND created_at < ?", id, models.BookingStatusPending, cutoff).
			Updates(map[string]interface{}{"status": models.BookingStatusExpired, "updated_at": now})
		if res.Error != nil {
			return expired, storageErr("expire booking", res.Error)
		}
		if res.RowsAffected == 1 {
			expired++
			s.holds.CancelHold(id)
			s.emitByID(id)
		}
	}
	if expired > 0 {
		utils.InfoLogger.Printf("Expired %d pending bookings", expired)
	}
	return expired, nil
}

// transition is a compare-and-swap from any of the given statuses to the target.
func (s *BookingService) transition(id uint, from []string, to string) (*models.Booking, error) {
	now := s.clock.Now().UTC()
	res := s.db.Model(&models.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": now})
	if res.Error != nil {
		return nil, storageErr("update booking status", res.Error)
	}

	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return nil, notFoundOr("booking", "load booking", err)
	}
	if res.RowsAffected == 0 {
		return nil, &InvalidStatusTransitionError{From: booking.Status, To: to}
	}
	return &booking, nil
}

func (s *BookingService) idForToken(token string) (uint, error) {
	if !plausibleToken(token) {
		return 0, &NotFoundError{Entity: "booking"}
	}
	var booking models.Booking
	res := s.db.Select("id").Where("confirmation_token = ?", token).Limit(1).Find(&booking)
	if res.Error != nil {
		return 0, storageErr("find booking by token", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, &NotFoundError{Entity: "booking"}
	}
	return booking.ID, nil
}

func (s *BookingService) emit(eventType string, booking *models.Booking) {
	if s.events == nil {
		return
	}
	s.events.Publish(events.Event{
		Type:       eventType,
		BookingID:  booking.ID,
		Status:     booking.Status,
		Booking:    booking,
		OccurredAt: s.clock.Now(),
	})
}

func (s *BookingService) emitByID(id uint) {
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		utils.ErrorLogger.Printf("Booking %d changed but could not be reloaded: %v", id, err)
		return
	}
	s.emit(events.ForStatus(booking.Status), &booking)
}
