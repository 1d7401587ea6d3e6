package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/models"
)

func TestLogin(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    "HOST@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Message)
	assert.Equal(t, models.RoleStaff, res.Data["user_role"])
	token, _ := res.Data["token"].(string)
	require.NotEmpty(t, token)

	profile := app.do(t, http.MethodGet, "/api/v1/admin/profile", token, nil)
	require.Equal(t, http.StatusOK, profile.Code)
	assert.Equal(t, "host@example.com", profile.Data["email"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    "host@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "invalid credentials", res.Message)

	res = app.do(t, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "invalid credentials", res.Message)
}

func TestRegisterUser(t *testing.T) {
	app := setupApp(t)

	body := map[string]string{
		"name":     "New Host",
		"email":    "new@example.com",
		"password": "longenough",
		"role":     models.RoleStaff,
	}
	res := app.do(t, http.MethodPost, "/api/v1/admin/users", app.staffToken, body)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = app.do(t, http.MethodPost, "/api/v1/admin/users", app.adminToken, body)
	require.Equal(t, http.StatusCreated, res.Code, res.Message)

	res = app.do(t, http.MethodPost, "/api/v1/admin/users", app.adminToken, body)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = app.do(t, http.MethodGet, "/api/v1/admin/users", app.adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.List, 3)
	for _, u := range res.List {
		_, hasPassword := u.(map[string]interface{})["password"]
		assert.False(t, hasPassword)
	}
}

func TestRegisterUserValidation(t *testing.T) {
	app := setupApp(t)

	res := app.do(t, http.MethodPost, "/api/v1/admin/users", app.adminToken, map[string]string{
		"name": "X", "email": "x@example.com", "password": "short", "role": models.RoleStaff,
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = app.do(t, http.MethodPost, "/api/v1/admin/users", app.adminToken, map[string]string{
		"name": "X", "email": "x@example.com", "password": "longenough", "role": "chef",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
