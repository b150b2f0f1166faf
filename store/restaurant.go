package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/models"
)

// RestaurantPatch carries the updatable restaurant fields. Slug is
// deliberately absent: it is immutable once set, because public links
// embed it. Timestamps are absent so callers cannot forge them.
type RestaurantPatch struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	LogoURL        *string `json:"logo_url"`
	BannerImageURL *string `json:"banner_image_url"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	IsActive       *bool   `json:"is_active"`
}

// ListRestaurants returns the restaurants visible to the caller. The
// select rule is the same for every caller: only active rows.
func (s *Store) ListRestaurants(id authz.Identity) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.Where("is_active = ?", true).
		Order("name ASC").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	// The engine owns the visibility rule; the WHERE clause is only a
	// prefilter.
	visible := restaurants[:0]
	for _, r := range restaurants {
		if s.policy.CanSelect(id, authz.TableRestaurants, r) == nil {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// GetRestaurantBySlug returns one visible restaurant. Inactive and
// nonexistent are indistinguishable.
func (s *Store) GetRestaurantBySlug(id authz.Identity, slug string) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.db.Where("slug = ?", slug).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanSelect(id, authz.TableRestaurants, r); err != nil {
		return nil, ErrNotFound
	}
	return &r, nil
}

// GetMenuBySlug returns a visible restaurant together with its active
// categories and their available items, ordered for presentation. Hidden
// rows are filtered at every level: an available item under an inactive
// category stays hidden, an active category under an inactive restaurant
// stays hidden.
func (s *Store) GetMenuBySlug(id authz.Identity, slug string) (*models.Restaurant, error) {
	r, err := s.GetRestaurantBySlug(id, slug)
	if err != nil {
		return nil, err
	}
	err = s.db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("display_order ASC, id ASC")
		}).
		Preload("Categories.Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("display_order ASC, id ASC")
		}).
		First(r, r.ID).Error
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRestaurant inserts a new tenant root. Admin only.
func (s *Store) CreateRestaurant(id authz.Identity, r *models.Restaurant) error {
	if err := s.policy.CanMutate(id, authz.OpInsert, authz.TableRestaurants); err != nil {
		return err
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := validateSlug(r.Slug); err != nil {
		return err
	}
	var count int64
	if err := s.db.Model(&models.Restaurant{}).Where("slug = ?", r.Slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: slug %q", ErrConflict, r.Slug)
	}
	// Timestamps are server-set, whatever the caller supplied.
	r.CreatedAt = zeroTime
	r.UpdatedAt = zeroTime
	return s.db.Create(r).Error
}

// UpdateRestaurant applies a patch to one restaurant. Admin only. The
// row need not be publicly visible: the update rule does not depend on
// row state, which is what lets an admin re-activate a hidden tenant.
func (s *Store) UpdateRestaurant(id authz.Identity, restaurantID uint, patch RestaurantPatch) (*models.Restaurant, error) {
	if err := s.policy.CanMutate(id, authz.OpUpdate, authz.TableRestaurants); err != nil {
		return nil, err
	}
	var r models.Restaurant
	err := s.db.First(&r, restaurantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	applyString(&r.Name, patch.Name)
	applyString(&r.Description, patch.Description)
	applyString(&r.PrimaryColor, patch.PrimaryColor)
	applyString(&r.SecondaryColor, patch.SecondaryColor)
	applyString(&r.Address, patch.Address)
	applyString(&r.Phone, patch.Phone)
	applyString(&r.Email, patch.Email)
	if patch.LogoURL != nil {
		r.LogoURL = patch.LogoURL
	}
	if patch.BannerImageURL != nil {
		r.BannerImageURL = patch.BannerImageURL
	}
	if patch.IsActive != nil {
		r.IsActive = *patch.IsActive
	}
	if r.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	// Save bumps updated_at via gorm's autoUpdateTime; created_at keeps
	// the loaded value.
	if err := s.db.Save(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRestaurant removes a restaurant and everything it owns: all its
// categories and all items under those categories, in one transaction.
// A partial cascade is impossible.
func (s *Store) DeleteRestaurant(id authz.Identity, restaurantID uint) error {
	if err := s.policy.CanMutate(id, authz.OpDelete, authz.TableRestaurants); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.MenuCategory{}).
			Select("id").
			Where("restaurant_id = ?", restaurantID)
		if err := tx.Where("category_id IN (?)", sub).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.MenuCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Restaurant{}, restaurantID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
