package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/models"
)

// CategoryPatch carries the updatable category fields. The owning
// restaurant cannot be changed and timestamps cannot be supplied.
type CategoryPatch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// ListCategories returns the visible categories of one visible
// restaurant, in display order.
func (s *Store) ListCategories(id authz.Identity, restaurantID uint) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := s.db.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("display_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	visible := categories[:0]
	for _, c := range categories {
		if s.policy.CanSelect(id, authz.TableMenuCategories, c) == nil {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// GetCategory returns one visible category.
func (s *Store) GetCategory(id authz.Identity, categoryID uint) (*models.MenuCategory, error) {
	var c models.MenuCategory
	err := s.db.First(&c, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanSelect(id, authz.TableMenuCategories, c); err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

// CreateCategory inserts a category under an existing restaurant. Admin
// only.
func (s *Store) CreateCategory(id authz.Identity, c *models.MenuCategory) error {
	if err := s.policy.CanMutate(id, authz.OpInsert, authz.TableMenuCategories); err != nil {
		return err
	}
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	var count int64
	if err := s.db.Model(&models.Restaurant{}).Where("id = ?", c.RestaurantID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: restaurant %d", ErrInvalidRef, c.RestaurantID)
	}
	c.CreatedAt = zeroTime
	c.UpdatedAt = zeroTime
	return s.db.Create(c).Error
}

// UpdateCategory applies a patch to one category. Admin only.
func (s *Store) UpdateCategory(id authz.Identity, categoryID uint, patch CategoryPatch) (*models.MenuCategory, error) {
	if err := s.policy.CanMutate(id, authz.OpUpdate, authz.TableMenuCategories); err != nil {
		return nil, err
	}
	var c models.MenuCategory
	err := s.db.First(&c, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	applyString(&c.Name, patch.Name)
	applyString(&c.Description, patch.Description)
	if patch.DisplayOrder != nil {
		c.DisplayOrder = *patch.DisplayOrder
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.db.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCategory removes a category and all its items in one
// transaction. Admin only.
func (s *Store) DeleteCategory(id authz.Identity, categoryID uint) error {
	if err := s.policy.CanMutate(id, authz.OpDelete, authz.TableMenuCategories); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.MenuCategory{}, categoryID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
