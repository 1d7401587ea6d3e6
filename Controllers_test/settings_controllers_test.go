package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsAdminOnly(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodGet, "/api/v1/admin/settings", app.staffToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = app.do(t, http.MethodPut, "/api/v1/admin/settings", app.staffToken, map[string]interface{}{"hold_timeout": 10})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestGetSettings(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodGet, "/api/v1/admin/settings", app.adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "no", res.Data["pooled_seating"])
	assert.Equal(t, "30", res.Data["hold_timeout"])
	assert.Equal(t, "UTC", res.Data["business_timezone"])
}

func TestUpdateSettingsCoercesJSONValues(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPut, "/api/v1/admin/settings", app.adminToken, map[string]interface{}{
		"pooled_seating": true,
		"hold_timeout":   45,
		"min_party_size": 10,
		"max_party_size": 4,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	assert.Equal(t, "yes", res.Data["pooled_seating"])
	assert.Equal(t, "45", res.Data["hold_timeout"])
	assert.Equal(t, "4", res.Data["min_party_size"])
	assert.Equal(t, "10", res.Data["max_party_size"])
}

func TestUpdateSettingsRejectsBadInput(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPut, "/api/v1/admin/settings", app.adminToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "no settings given", res.Message)

	res = app.do(t, http.MethodPut, "/api/v1/admin/settings", app.adminToken, map[string]interface{}{"business_timezone": "Mars/Olympus"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = app.do(t, http.MethodPut, "/api/v1/admin/settings", app.adminToken, map[string]interface{}{"happy_hour": "yes"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestPooledSeatingChangesAvailability(t *testing.T) {
	app := setupApp(t)

	// Per table, nobody seats ten.
	avail := app.do(t, http.MethodGet, "/api/v1/availability?date="+tuesday+"&party_size=10", "", nil)
	require.Equal(t, http.StatusOK, avail.Code)
	assert.EqualValues(t, 0, avail.Data["total_slots"])

	res := app.do(t, http.MethodPut, "/api/v1/admin/settings", app.adminToken, map[string]interface{}{"pooled_seating": "yes"})
	require.Equal(t, http.StatusOK, res.Code, res.Message)

	// Pooled over 20 seats, dinner (max 12) opens up.
	avail = app.do(t, http.MethodGet, "/api/v1/availability?date="+tuesday+"&party_size=10", "", nil)
	require.Equal(t, http.StatusOK, avail.Code)
	assert.Equal(t, []interface{}{"17:00", "18:00", "19:00", "20:00"}, avail.Data["available_slots"])
}
