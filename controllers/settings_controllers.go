package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/hub"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type SettingsController struct {
	Settings *services.SettingsService
	Board    *hub.Hub
}

func NewSettingsController(settings *services.SettingsService, board *hub.Hub) *SettingsController {
	return &SettingsController{Settings: settings, Board: board}
}

// GetSettings -> every setting, defaults filled in
func (sc *SettingsController) GetSettings(c *gin.Context) {
	values, err := sc.Settings.All()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Settings", values)
}

// UpdateSettings -> accepts a flat object; numbers and booleans are stored as text
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(body) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no settings given"))
		return
	}

	input := make(map[string]string, len(body))
	for key, value := range body {
		switch v := value.(type) {
		case nil:
			input[key] = ""
		case float64:
			input[key] = fmt.Sprintf("%.0f", v)
		default:
			input[key] = fmt.Sprint(v)
		}
	}

	values, err := sc.Settings.UpdateSettings(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sc.Board.Broadcast(hub.Message{Event: hub.EventSettingUpdate, Action: "updated", Data: values})
	utils.RespondJSON(c, http.StatusOK, "Settings updated", values)
}
