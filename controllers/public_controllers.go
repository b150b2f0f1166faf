package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

// PublicController serves the anonymous read surface: the restaurant
// directory and the per-restaurant menu page.
type PublicController struct {
	Store *store.Store
}

func NewPublicController(s *store.Store) *PublicController {
	return &PublicController{Store: s}
}

// ListRestaurants returns every active restaurant.
func (pc *PublicController) ListRestaurants(c *gin.Context) {
	restaurants, err := pc.Store.ListRestaurants(middlewares.Identity(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active restaurants", restaurants)
}

// GetMenuBySlug returns one active restaurant with its active
// categories and available items. An unknown slug and an inactive
// restaurant are both a plain 404.
func (pc *PublicController) GetMenuBySlug(c *gin.Context) {
	restaurant, err := pc.Store.GetMenuBySlug(middlewares.Identity(c), c.Param("slug"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant menu", restaurant)
}
