package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

// BookingController is the staff side of the booking lifecycle.
type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

func bookingID(c *gin.Context) (uint, bool) {
	return paramID(c, "booking_id", "invalid booking id")
}

// paramID parses a positive numeric path parameter, answering 400 when it is not one.
func paramID(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New(message))
		return 0, false
	}
	return uint(id), true
}

// ListBookings -> bookings for ?date=, or a search over ?q= with limit/offset
func (bc *BookingController) ListBookings(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		bookings, err := bc.Bookings.BookingsByDate(date)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Bookings for "+date, bookings)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	bookings, err := bc.Bookings.SearchBookings(c.Query("q"), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bookings", bookings)
}

// GetBooking -> one booking with its table
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// CreateBooking -> staff-entered booking, confirmed immediately
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input services.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking request body"))
		return
	}
	booking, err := bc.Bookings.CreateBooking(input, true)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.ConfirmBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking confirmed", booking)
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.CancelBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", booking)
}

// UpdateStatus -> seated, no_show and any other legal move
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status is required"))
		return
	}
	booking, err := bc.Bookings.UpdateStatus(id, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking status updated", booking)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := bc.Bookings.DeleteBooking(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking deleted", gin.H{"booking_id": id})
}

// Stats -> per-status counts, optionally between start_date and end_date
func (bc *BookingController) Stats(c *gin.Context) {
	stats, err := bc.Bookings.BookingStats(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking stats", stats)
}
