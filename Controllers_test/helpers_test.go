package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

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

// setupApp builds an in-memory database and the full router, and seeds
// an admin and a plain user.
func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.UserRole{},
	))

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: string(hashed)}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: admin.ID, Role: models.RoleAdmin}).Error)

	plain := models.User{Name: "Diner", Email: "diner@example.com", Password: string(hashed)}
	require.NoError(t, db.Create(&plain).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: plain.ID, Role: models.RoleUser}).Error)

	objects, err := storage.NewLocal(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	return router.SetupRouter(db, store.New(db), objects), db
}

// doJSON performs a JSON request and decodes the standard envelope.
func doJSON(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
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

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// itoa renders a JSON-decoded numeric id for use in a URL.
func itoa(id float64) string {
	return strconv.Itoa(int(id))
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w, resp := doJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	return token
}
