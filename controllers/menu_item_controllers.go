package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menudeck/menudeck/middlewares"
	"github.com/menudeck/menudeck/models"
	"github.com/menudeck/menudeck/store"
	"github.com/menudeck/menudeck/utils"
)

type MenuItemController struct {
	Store *store.Store
}

func NewMenuItemController(s *store.Store) *MenuItemController {
	return &MenuItemController{Store: s}
}

// GetItems lists the visible items of one category.
func (mic *MenuItemController) GetItems(c *gin.Context) {
	categoryID, ok := paramID(c, "cat_id")
	if !ok {
		return
	}
	items, err := mic.Store.ListItems(middlewares.Identity(c), categoryID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items", items)
}

// GetItemByID returns one visible item.
func (mic *MenuItemController) GetItemByID(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	item, err := mic.Store.GetItem(middlewares.Identity(c), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item detail", item)
}

// CreateItem adds an item to a category.
func (mic *MenuItemController) CreateItem(c *gin.Context) {
	var body struct {
		CategoryID   uint    `json:"category_id" binding:"required"`
		Name         string  `json:"name" binding:"required"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		ImageURL     *string `json:"image_url"`
		IsVegetarian bool    `json:"is_vegetarian"`
		IsVegan      bool    `json:"is_vegan"`
		IsSpicy      bool    `json:"is_spicy"`
		IsAvailable  *bool   `json:"is_available"`
		DisplayOrder int     `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		CategoryID:   body.CategoryID,
		Name:         body.Name,
		Description:  body.Description,
		Price:        body.Price,
		ImageURL:     body.ImageURL,
		IsVegetarian: body.IsVegetarian,
		IsVegan:      body.IsVegan,
		IsSpicy:      body.IsSpicy,
		IsAvailable:  true,
		DisplayOrder: body.DisplayOrder,
	}
	if body.IsAvailable != nil {
		item.IsAvailable = *body.IsAvailable
	}

	if err := mic.Store.CreateItem(middlewares.Identity(c), &item); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// UpdateItem patches an item.
func (mic *MenuItemController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	var patch store.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item, err := mic.Store.UpdateItem(middlewares.Identity(c), id, patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}

// DeleteItem removes one item.
func (mic *MenuItemController) DeleteItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	if err := mic.Store.DeleteItem(middlewares.Identity(c), id); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item deleted", gin.H{"item_id": id})
}
