package store

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/models"
)

// ItemPatch carries the updatable item fields. Vegetarian and vegan are
// independent flags here; keeping them mutually exclusive is left to
// clients, matching the stored model.
type ItemPatch struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	ImageURL     *string  `json:"image_url"`
	IsVegetarian *bool    `json:"is_vegetarian"`
	IsVegan      *bool    `json:"is_vegan"`
	IsSpicy      *bool    `json:"is_spicy"`
	IsAvailable  *bool    `json:"is_available"`
	DisplayOrder *int     `json:"display_order"`
}

// ListItems returns the visible items of one category, in display order.
func (s *Store) ListItems(id authz.Identity, categoryID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.Where("category_id = ? AND is_available = ?", categoryID, true).
		Order("display_order ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	visible := items[:0]
	for _, it := range items {
		if s.policy.CanSelect(id, authz.TableMenuItems, it) == nil {
			visible = append(visible, it)
		}
	}
	return visible, nil
}

// GetItem returns one visible item.
func (s *Store) GetItem(id authz.Identity, itemID uint) (*models.MenuItem, error) {
	var it models.MenuItem
	err := s.db.First(&it, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanSelect(id, authz.TableMenuItems, it); err != nil {
		return nil, ErrNotFound
	}
	return &it, nil
}

// CreateItem inserts an item under an existing category. Admin only.
func (s *Store) CreateItem(id authz.Identity, it *models.MenuItem) error {
	if err := s.policy.CanMutate(id, authz.OpInsert, authz.TableMenuItems); err != nil {
		return err
	}
	if it.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validatePrice(it.Price); err != nil {
		return err
	}
	var count int64
	if err := s.db.Model(&models.MenuCategory{}).Where("id = ?", it.CategoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: category %d", ErrInvalidRef, it.CategoryID)
	}
	it.CreatedAt = zeroTime
	it.UpdatedAt = zeroTime
	return s.db.Create(it).Error
}

// UpdateItem applies a patch to one item. Admin only. The caller cannot
// supply timestamps; updated_at is bumped server-side on every save.
func (s *Store) UpdateItem(id authz.Identity, itemID uint, patch ItemPatch) (*models.MenuItem, error) {
	if err := s.policy.CanMutate(id, authz.OpUpdate, authz.TableMenuItems); err != nil {
		return nil, err
	}
	var it models.MenuItem
	err := s.db.First(&it, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	applyString(&it.Name, patch.Name)
	applyString(&it.Description, patch.Description)
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return nil, err
		}
		it.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		it.ImageURL = patch.ImageURL
	}
	if patch.IsVegetarian != nil {
		it.IsVegetarian = *patch.IsVegetarian
	}
	if patch.IsVegan != nil {
		it.IsVegan = *patch.IsVegan
	}
	if patch.IsSpicy != nil {
		it.IsSpicy = *patch.IsSpicy
	}
	if patch.IsAvailable != nil {
		it.IsAvailable = *patch.IsAvailable
	}
	if patch.DisplayOrder != nil {
		it.DisplayOrder = *patch.DisplayOrder
	}
	if it.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.db.Save(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// DeleteItem removes one item. Admin only.
func (s *Store) DeleteItem(id authz.Identity, itemID uint) error {
	if err := s.policy.CanMutate(id, authz.OpDelete, authz.TableMenuItems); err != nil {
		return err
	}
	res := s.db.Delete(&models.MenuItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// validatePrice enforces the decimal(10,2) column: non-negative with at
// most two decimal places. Finer precision is rejected rather than
// silently rounded.
func validatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if price != math.Round(price*100)/100 {
		return fmt.Errorf("%w: price must have at most two decimal places", ErrValidation)
	}
	return nil
}
