package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	r, db := setupApp(t)

	w, resp := doJSON(t, r, "POST", "/register", "", map[string]string{
		"name":     "New Owner",
		"email":    "owner@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := resp["data"].(map[string]interface{})["user_id"].(float64)
	assert.NotZero(t, userID)

	// Fresh accounts hold no grants.
	var grants int64
	require.NoError(t, db.Table("user_roles").Where("user_id = ?", uint(userID)).Count(&grants).Error)
	assert.Zero(t, grants)

	w, resp = doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "longenough",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["data"].(map[string]interface{})["token"])

	w, _ = doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := setupApp(t)

	// Short password.
	w, _ := doJSON(t, r, "POST", "/register", "", map[string]string{
		"name": "X", "email": "x@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bad email.
	w, _ = doJSON(t, r, "POST", "/register", "", map[string]string{
		"name": "X", "email": "not-an-email", "password": "longenough",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate email.
	w, _ = doJSON(t, r, "POST", "/register", "", map[string]string{
		"name": "X", "email": "admin@example.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProfileEndpoint(t *testing.T) {
	r, _ := setupApp(t)
	token := login(t, r, "admin@example.com")

	w, resp := doJSON(t, r, "GET", "/admin/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", data["email"])

	w, _ = doJSON(t, r, "GET", "/admin/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
