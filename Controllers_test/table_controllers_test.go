package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
)

func TestCreateTable(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPost, "/api/v1/admin/tables", app.staffToken, map[string]interface{}{
		"name":          "Bar 1",
		"capacity":      3,
		"location_zone": "Bar",
	})
	require.Equal(t, http.StatusCreated, res.Code, res.Message)
	assert.Equal(t, "Table created successfully", res.Message)
	assert.Equal(t, models.TableStatusActive, res.Data["status"])

	var table models.Table
	require.NoError(t, app.db.Where("name = ?", "Bar 1").First(&table).Error)
	assert.Equal(t, 3, table.Capacity)
}

func TestCreateTableValidation(t *testing.T) {
	app := setupApp(t)

	for name, body := range map[string]map[string]interface{}{
		"missing name":   {"capacity": 2},
		"zero capacity":  {"name": "T", "capacity": 0},
		"unknown status": {"name": "T", "capacity": 2, "status": "broken"},
	} {
		res := app.do(t, http.MethodPost, "/api/v1/admin/tables", app.staffToken, body)
		assert.Equal(t, http.StatusBadRequest, res.Code, name)
	}
}

func TestGetAllTablesFilter(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPut, "/api/v1/admin/tables/4", app.staffToken, map[string]interface{}{
		"name":     "Table 4",
		"capacity": 8,
		"status":   models.TableStatusInactive,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Message)

	res = app.do(t, http.MethodGet, "/api/v1/admin/tables", app.staffToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.List, 4)

	res = app.do(t, http.MethodGet, "/api/v1/admin/tables?status=active", app.staffToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.List, 3)
}

func TestInactiveTableLeavesAvailability(t *testing.T) {
	app := setupApp(t)

	// Table 4 is the only one seating eight.
	res := app.do(t, http.MethodPut, "/api/v1/admin/tables/4", app.staffToken, map[string]interface{}{
		"name":     "Table 4",
		"capacity": 8,
		"status":   models.TableStatusInactive,
	})
	require.Equal(t, http.StatusOK, res.Code)

	avail := app.do(t, http.MethodGet, "/api/v1/availability?date="+tuesday+"&party_size=8", "", nil)
	require.Equal(t, http.StatusOK, avail.Code)
	assert.EqualValues(t, 0, avail.Data["total_slots"])
}

func TestUpdateUnknownTable(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPut, "/api/v1/admin/tables/99", app.staffToken, map[string]interface{}{
		"name": "Ghost", "capacity": 2,
	})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestDeleteTable(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodDelete, "/api/v1/admin/tables/3", app.staffToken, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var count int64
	require.NoError(t, app.db.Model(&models.Table{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	res = app.do(t, http.MethodDelete, "/api/v1/admin/tables/3", app.staffToken, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestDeleteTableWithBookings(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPost, "/api/v1/book", "", bookingBody(tuesday, "12:00", 2))
	require.Equal(t, http.StatusCreated, res.Code)

	res = app.do(t, http.MethodDelete, "/api/v1/admin/tables/1", app.staffToken, nil)
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestTableRoutesRejectNonNumericID(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodDelete, "/api/v1/admin/tables/1%20OR%201=1", app.staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "invalid table id", res.Message)

	var count int64
	require.NoError(t, app.db.Model(&models.Table{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}
