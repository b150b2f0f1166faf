package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/storage"
	"github.com/menudeck/menudeck/utils"
)

// ImageController is the write side of the binary object store. Its
// gate is deliberately coarser than the table policy: any authenticated
// caller may upload or delete images, admin or not. Reads are public
// and never pass through here.
type ImageController struct {
	Objects storage.ObjectStore
}

func NewImageController(objects storage.ObjectStore) *ImageController {
	return &ImageController{Objects: objects}
}

// Upload accepts one multipart image, validates size and sniffed MIME
// type, and stores it under a fresh key.
func (ic *ImageController) Upload(c *gin.Context) {
	if !middlewares.Identity(c).Authenticated() {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}
	if file.Size > storage.MaxObjectSize {
		utils.RespondError(c, http.StatusBadRequest, storage.ErrTooLarge)
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxObjectSize+1))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	contentType, err := storage.ValidateImage(data)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	key := uuid.NewString() + storage.Ext(contentType)
	url, err := ic.Objects.Put(c.Request.Context(), key, contentType, bytes.NewReader(data))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Image uploaded", gin.H{
		"key": key,
		"url": url,
	})
}

// Delete removes an uploaded object by key.
func (ic *ImageController) Delete(c *gin.Context) {
	if !middlewares.Identity(c).Authenticated() {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	key := c.Param("key")
	if err := ic.Objects.Delete(c.Request.Context(), key); err != nil {
		if errors.Is(err, storage.ErrObjectMissing) {
			utils.RespondError(c, http.StatusNotFound, storage.ErrObjectMissing)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Image deleted", gin.H{"key": key})
}
