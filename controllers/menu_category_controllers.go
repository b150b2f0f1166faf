package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/models"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

type MenuCategoryController struct {
	Store *store.Store
}

func NewMenuCategoryController(s *store.Store) *MenuCategoryController {
	return &MenuCategoryController{Store: s}
}

// GetCategories lists the visible categories of one restaurant.
func (mcc *MenuCategoryController) GetCategories(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurant_id")
	if !ok {
		return
	}
	categories, err := mcc.Store.ListCategories(middlewares.Identity(c), restaurantID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu categories", categories)
}

// GetCategoryByID returns one visible category.
func (mcc *MenuCategoryController) GetCategoryByID(c *gin.Context) {
	id, ok := paramID(c, "cat_id")
	if !ok {
		return
	}
	category, err := mcc.Store.GetCategory(middlewares.Identity(c), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", category)
}

// CreateCategory adds a category to a restaurant.
func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
		IsActive     *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{
		RestaurantID: body.RestaurantID,
		Name:         body.Name,
		Description:  body.Description,
		DisplayOrder: body.DisplayOrder,
		IsActive:     true,
	}
	if body.IsActive != nil {
		category.IsActive = *body.IsActive
	}

	if err := mcc.Store.CreateCategory(middlewares.Identity(c), &category); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory patches a category.
func (mcc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "cat_id")
	if !ok {
		return
	}
	var patch store.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := mcc.Store.UpdateCategory(middlewares.Identity(c), id, patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes a category and all its items.
func (mcc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "cat_id")
	if !ok {
		return
	}
	if err := mcc.Store.DeleteCategory(middlewares.Identity(c), id); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
