package Controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menudeck/menudeck/storage"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// doUpload posts one multipart image file.
func doUpload(t *testing.T, r *gin.Engine, token string, data []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "upload.bin")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", "/admin/images", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
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

func TestImageUploadOpenToAnyAuthenticatedCaller(t *testing.T) {
	r, _ := setupApp(t)

	// The upload gate is coarser than the table policy: a plain diner
	// account, which cannot touch any policed table, may still upload.
	dinerToken := login(t, r, "diner@example.com")
	w, resp := doUpload(t, r, dinerToken, pngBytes)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	key, ok := data["key"].(string)
	require.True(t, ok)
	assert.Contains(t, key, ".png")
	url, ok := data["url"].(string)
	require.True(t, ok)
	assert.Contains(t, url, "/uploads/"+key)

	// Public read: the stored object is served without any token.
	req, err := http.NewRequest("GET", "/uploads/"+key, nil)
	require.NoError(t, err)
	get := httptest.NewRecorder()
	r.ServeHTTP(get, req)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, pngBytes, get.Body.Bytes())

	// And the same diner may delete it again.
	w, _ = doJSON(t, r, "DELETE", "/admin/images/"+key, dinerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImageUploadRequiresAuthentication(t *testing.T) {
	r, _ := setupApp(t)

	w, _ := doUpload(t, r, "", pngBytes)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, "DELETE", "/admin/images/whatever.png", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImageUploadRejectsInvalidObjects(t *testing.T) {
	r, _ := setupApp(t)
	dinerToken := login(t, r, "diner@example.com")

	// Not an image.
	w, resp := doUpload(t, r, dinerToken, []byte("%PDF-1.4 not an image"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["message"], "unsupported")

	// Over the size cap.
	big := make([]byte, storage.MaxObjectSize+1)
	copy(big, pngBytes)
	w, _ = doUpload(t, r, dinerToken, big)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageDeleteUnknownKey(t *testing.T) {
	r, _ := setupApp(t)
	dinerToken := login(t, r, "diner@example.com")

	w, _ := doJSON(t, r, "DELETE", "/admin/images/no-such-object.png", dinerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
