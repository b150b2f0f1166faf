package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/models"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

type UserRoleController struct {
	Store *store.Store
}

func NewUserRoleController(s *store.Store) *UserRoleController {
	return &UserRoleController{Store: s}
}

// GetRoles lists grant rows. Admins see all grants, other callers see
// only their own rows.
func (urc *UserRoleController) GetRoles(c *gin.Context) {
	roles, err := urc.Store.ListRoles(middlewares.Identity(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role grants", roles)
}

// CreateRole grants a role, optionally scoped to one restaurant.
func (urc *UserRoleController) CreateRole(c *gin.Context) {
	var body struct {
		UserID       uint   `json:"user_id" binding:"required"`
		Role         string `json:"role" binding:"required"`
		RestaurantID *uint  `json:"restaurant_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	grant := models.UserRole{
		UserID:       body.UserID,
		Role:         body.Role,
		RestaurantID: body.RestaurantID,
	}
	if err := urc.Store.CreateRole(middlewares.Identity(c), &grant); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Role granted", grant)
}

// DeleteRole revokes a grant.
func (urc *UserRoleController) DeleteRole(c *gin.Context) {
	id, ok := paramID(c, "role_id")
	if !ok {
		return
	}
	if err := urc.Store.DeleteRole(middlewares.Identity(c), id); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role revoked", gin.H{"role_id": id})
}
