package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

type ShiftController struct {
	DB    *gorm.DB
	Board *hub.Hub
}

func NewShiftController(db *gorm.DB, board *hub.Hub) *ShiftController {
	return &ShiftController{DB: db, Board: board}
}

const defaultBufferMinutes = 15

type shiftRequest struct {
	Name              string `json:"name" binding:"required,max=100"`
	Weekdays          []int  `json:"weekdays" binding:"required,min=1,dive,min=0,max=6"`
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time" binding:"required"`
	SlotLengthMinutes int    `json:"slot_length_minutes" binding:"required,gt=0"`
	BufferMinutes     *int   `json:"buffer_minutes" binding:"omitempty,gte=0"`
	MaxPartySize      int    `json:"max_party_size" binding:"required,gt=0"`
	Timezone          string `json:"timezone"`
}

// apply validates the time window and copies the request onto shift.
func (r shiftRequest) apply(shift *models.Shift) error {
	start, err := services.NormalizeClock(r.StartTime)
	if err != nil {
		return errors.New("start_time must be HH:MM or HH:MM:SS")
	}
	end, err := services.NormalizeClock(r.EndTime)
	if err != nil {
		return errors.New("end_time must be HH:MM or HH:MM:SS")
	}
	if end <= start {
		return errors.New("end_time must be after start_time")
	}

	shift.Name = r.Name
	shift.Weekdays = models.FormatWeekdays(r.Weekdays)
	shift.StartTime = start
	shift.EndTime = end
	shift.SlotLengthMinutes = r.SlotLengthMinutes
	shift.BufferMinutes = defaultBufferMinutes
	if r.BufferMinutes != nil {
		shift.BufferMinutes = *r.BufferMinutes
	}
	shift.MaxPartySize = r.MaxPartySize
	shift.Timezone = r.Timezone
	if shift.Timezone == "" {
		shift.Timezone = "UTC"
	}
	return nil
}

// CreateShift -> adds a recurring service window
func (sc *ShiftController) CreateShift(c *gin.Context) {
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var shift models.Shift
	if err := req.apply(&shift); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sc.DB.Create(&shift).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	sc.Board.Broadcast(hub.Message{Event: hub.EventShiftUpdate, Action: "created", Data: shift})
	utils.InfoLogger.Printf("Shift %s created (%s-%s)", shift.Name, shift.StartTime, shift.EndTime)
	utils.RespondJSON(c, http.StatusCreated, "Shift created successfully", shift)
}

func (sc *ShiftController) GetAllShifts(c *gin.Context) {
	var shifts []models.Shift
	if err := sc.DB.Order("start_time ASC").Order("id ASC").Find(&shifts).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of shifts", shifts)
}

// UpdateShift -> changes apply to future availability only
func (sc *ShiftController) UpdateShift(c *gin.Context) {
	id, ok := paramID(c, "shift_id", "invalid shift id")
	if !ok {
		return
	}
	var shift models.Shift
	if err := sc.DB.First(&shift, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("shift not found"))
		return
	}
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.apply(&shift); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sc.DB.Save(&shift).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	sc.Board.Broadcast(hub.Message{Event: hub.EventShiftUpdate, Action: "updated", Data: shift})
	utils.RespondJSON(c, http.StatusOK, "Shift updated", shift)
}

func (sc *ShiftController) DeleteShift(c *gin.Context) {
	id, ok := paramID(c, "shift_id", "invalid shift id")
	if !ok {
		return
	}
	var shift models.Shift
	if err := sc.DB.First(&shift, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("shift not found"))
		return
	}
	if err := sc.DB.Delete(&shift).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	sc.Board.Broadcast(hub.Message{Event: hub.EventShiftUpdate, Action: "deleted", Data: shift})
	utils.RespondJSON(c, http.StatusOK, "Shift deleted", gin.H{"shift_id": shift.ID})
}
