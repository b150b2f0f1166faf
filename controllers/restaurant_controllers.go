package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/models"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

type RestaurantController struct {
	Store *store.Store
}

func NewRestaurantController(s *store.Store) *RestaurantController {
	return &RestaurantController{Store: s}
}

// GetAllRestaurants lists restaurants for the admin UI. The select rule
// is the same as on the public surface: only active rows are visible.
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	restaurants, err := rc.Store.ListRestaurants(middlewares.Identity(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All restaurants", restaurants)
}

// CreateRestaurant creates a tenant root.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var body struct {
		Name           string  `json:"name" binding:"required"`
		Slug           string  `json:"slug" binding:"required"`
		Description    string  `json:"description"`
		PrimaryColor   string  `json:"primary_color"`
		SecondaryColor string  `json:"secondary_color"`
		LogoURL        *string `json:"logo_url"`
		BannerImageURL *string `json:"banner_image_url"`
		Address        string  `json:"address"`
		Phone          string  `json:"phone"`
		Email          string  `json:"email"`
		IsActive       *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Name:           body.Name,
		Slug:           body.Slug,
		Description:    body.Description,
		PrimaryColor:   body.PrimaryColor,
		SecondaryColor: body.SecondaryColor,
		LogoURL:        body.LogoURL,
		BannerImageURL: body.BannerImageURL,
		Address:        body.Address,
		Phone:          body.Phone,
		Email:          body.Email,
		IsActive:       true,
	}
	if body.IsActive != nil {
		restaurant.IsActive = *body.IsActive
	}

	if err := rc.Store.CreateRestaurant(middlewares.Identity(c), &restaurant); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// UpdateRestaurant patches a restaurant. The slug is immutable and any
// timestamps in the payload are ignored.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	id, ok := paramID(c, "restaurant_id")
	if !ok {
		return
	}
	var patch store.RestaurantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	restaurant, err := rc.Store.UpdateRestaurant(middlewares.Identity(c), id, patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}

// DeleteRestaurant removes a restaurant and cascades to its categories
// and items.
func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	id, ok := paramID(c, "restaurant_id")
	if !ok {
		return
	}
	if err := rc.Store.DeleteRestaurant(middlewares.Identity(c), id); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant deleted", gin.H{"restaurant_id": id})
}
