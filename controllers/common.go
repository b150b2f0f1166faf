package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

// respondStoreError maps store errors onto the HTTP surface. Policy
// denials stay generic so the response never reveals which rule would
// have allowed the operation.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrDenied):
		utils.RespondError(c, http.StatusForbidden, authz.ErrDenied)
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, store.ErrNotFound)
	case errors.Is(err, store.ErrValidation):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, store.ErrInvalidRef):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, store.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}
