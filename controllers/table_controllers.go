package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB    *gorm.DB
	Board *hub.Hub
}

func NewTableController(db *gorm.DB, board *hub.Hub) *TableController {
	return &TableController{DB: db, Board: board}
}

type tableRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Capacity     int    `json:"capacity" binding:"required,gt=0"`
	Status       string `json:"status" binding:"omitempty,oneof=active inactive"`
	LocationZone string `json:"location_zone" binding:"max=100"`
	Notes        string `json:"notes"`
}

// CreateTable -> adds a table, active unless told otherwise
func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Name:         req.Name,
		Capacity:     req.Capacity,
		Status:       models.TableStatusActive,
		LocationZone: req.LocationZone,
		Notes:        req.Notes,
	}
	if req.Status != "" {
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Board.Broadcast(hub.Message{Event: hub.EventTableUpdate, Action: "created", Data: table})
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.Name, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> every table, ordered by id
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	q := tc.DB.Order("id ASC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&tables).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTable -> edits a table; deactivating it removes it from future availability
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, ok := paramID(c, "table_id", "invalid table id")
	if !ok {
		return
	}
	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	table.Name = req.Name
	table.Capacity = req.Capacity
	table.LocationZone = req.LocationZone
	table.Notes = req.Notes
	if req.Status != "" {
		table.Status = req.Status
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Board.Broadcast(hub.Message{Event: hub.EventTableUpdate, Action: "updated", Data: table})
	utils.InfoLogger.Printf("Table %d updated (status=%s, capacity=%d)", table.ID, table.Status, table.Capacity)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> removes a table no booking refers to
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := paramID(c, "table_id", "invalid table id")
	if !ok {
		return
	}
	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	var refs int64
	if err := tc.DB.Model(&models.Booking{}).Where("table_id = ?", table.ID).Count(&refs).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if refs > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("table has bookings; set it inactive instead"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Board.Broadcast(hub.Message{Event: hub.EventTableUpdate, Action: "deleted", Data: table})
	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.ID})
}
