package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/menudeck/menudeck/database"
	"github.com/menudeck/menudeck/models"
	"github.com/menudeck/menudeck/router"
	"github.com/menudeck/menudeck/storage"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndPublishing covers the publishing flow end to end:
// 1. Bootstrap an admin, log in for a token.
// 2. Build a tenant: restaurant, category, item.
// 3. Anonymous diner fetches the published menu.
// 4. A plain owner account cannot touch any of it.
// 5. Tearing down the restaurant removes the whole tenant.
func TestEndToEndPublishing(t *testing.T) {
	db := setupIntegrationDB(t)

	objects, err := storage.NewLocal(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	r := router.SetupRouter(db, store.New(db), objects)

	adminToken := loginAs(t, r, "admin@example.com", "secret123")
	dinerToken := loginAs(t, r, "diner@example.com", "secret123")

	// Build the tenant.
	restaurantID := createJSON(t, r, adminToken, "/admin/restaurants", map[string]interface{}{
		"name":          "Pizza Palace",
		"slug":          "pizza-palace",
		"primary_color": "#c8102e",
	})
	categoryID := createJSON(t, r, adminToken, "/admin/categories", map[string]interface{}{
		"restaurant_id": restaurantID,
		"name":          "Starters",
		"display_order": 1,
	})
	itemID := createJSON(t, r, adminToken, "/admin/items", map[string]interface{}{
		"category_id": categoryID,
		"name":        "Garlic Bread",
		"price":       149.00,
	})

	// Anonymous read.
	w := request(t, r, "GET", "/restaurants/pizza-palace/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data models.Restaurant `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Categories, 1)
	require.Len(t, resp.Data.Categories[0].Items, 1)
	assert.Equal(t, 149.00, resp.Data.Categories[0].Items[0].Price)

	// The diner's token opens the admin group but not the admin rules.
	w = request(t, r, "PATCH", fmt.Sprintf("/admin/items/%d", int(itemID)), dinerToken, map[string]interface{}{
		"price": 1.00,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Teardown cascades.
	w = request(t, r, "DELETE", fmt.Sprintf("/admin/restaurants/%d", int(restaurantID)), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories, items int64
	require.NoError(t, db.Model(&models.MenuCategory{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&items).Error)
	assert.Zero(t, categories)
	assert.Zero(t, items)

	w = request(t, r, "GET", "/restaurants/pizza-palace/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: string(hashed)}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: admin.ID, Role: models.RoleAdmin}).Error)

	diner := models.User{Name: "Diner", Email: "diner@example.com", Password: string(hashed)}
	require.NoError(t, db.Create(&diner).Error)

	return db
}

func request(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := request(t, r, "POST", "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func createJSON(t *testing.T, r *gin.Engine, token, url string, payload map[string]interface{}) float64 {
	t.Helper()
	w := request(t, r, "POST", url, token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	id, ok := resp.Data["id"].(float64)
	require.True(t, ok)
	return id
}
