package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

// PublicBookingController serves the guest-facing booking API.
type PublicBookingController struct {
	Slots    *services.SlotGenerator
	Bookings *services.BookingService
}

func NewPublicBookingController(slots *services.SlotGenerator, bookings *services.BookingService) *PublicBookingController {
	return &PublicBookingController{Slots: slots, Bookings: bookings}
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Availability -> bookable times for a date and party size
func (pc *PublicBookingController) Availability(c *gin.Context) {
	date := c.Query("date")
	partySize, err := strconv.Atoi(c.Query("party_size"))
	if date == "" || err != nil || partySize <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date and a positive party_size are required"))
		return
	}
	if _, err := services.ParseDate(date, time.UTC); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	slots, err := pc.Slots.AvailableSlots(date, partySize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Available time slots found."
	if len(slots) == 0 {
		message = "No available time slots for the selected date and party size."
	}
	utils.RespondJSON(c, http.StatusOK, message, gin.H{
		"date":            date,
		"party_size":      partySize,
		"available_slots": slots,
		"total_slots":     len(slots),
	})
}

// Book -> guest booking request, created pending
func (pc *PublicBookingController) Book(c *gin.Context) {
	var input services.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking request body"))
		return
	}

	booking, err := pc.Bookings.CreateBooking(input, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully. Please check your email to confirm.", gin.H{
		"booking_id":         booking.ID,
		"confirmation_token": booking.ConfirmationToken,
		"status":             booking.Status,
		"customer_name":      booking.CustomerName,
		"date":               booking.Date,
		"time":               booking.Time,
		"party_size":         booking.PartySize,
	})
}

// Confirm -> guest confirms with their token
func (pc *PublicBookingController) Confirm(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token is required"))
		return
	}
	if _, err := pc.Bookings.ConfirmBookingByToken(req.Token); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking confirmed successfully!", nil)
}

// Cancel -> guest cancels with their token
func (pc *PublicBookingController) Cancel(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token is required"))
		return
	}
	if _, err := pc.Bookings.CancelBookingByToken(req.Token); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled successfully.", nil)
}

// GetBooking -> booking details for the token holder
func (pc *PublicBookingController) GetBooking(c *gin.Context) {
	booking, err := pc.Bookings.GetBookingByToken(c.Param("token"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking details", bookingView(booking))
}

func bookingView(b *models.Booking) gin.H {
	return gin.H{
		"id":            b.ID,
		"customer_name": b.CustomerName,
		"email":         b.Email,
		"phone":         b.Phone,
		"date":          b.Date,
		"time":          b.Time,
		"party_size":    b.PartySize,
		"table_id":      b.TableID,
		"table_name":    b.TableLabel(),
		"status":        b.Status,
		"notes":         b.Notes,
		"created_at":    b.CreatedAt,
	}
}
