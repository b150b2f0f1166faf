package store

import (
	"fmt"

	"github.com/menudeck/menudeck/authz"
	"github.com/menudeck/menudeck/models"
)

// ListRoles returns the grant rows visible to the caller: admins see
// every grant, everyone else sees exactly the rows where user_id is
// their own. Anonymous callers see nothing.
func (s *Store) ListRoles(id authz.Identity) ([]models.UserRole, error) {
	var roles []models.UserRole
	q := s.db.Order("id ASC")
	if !s.policy.HasRole(id, models.RoleAdmin) {
		if !id.Authenticated() {
			return []models.UserRole{}, nil
		}
		q = q.Where("user_id = ?", id.UserID)
	}
	if err := q.Find(&roles).Error; err != nil {
		return nil, err
	}
	visible := roles[:0]
	for _, r := range roles {
		if s.policy.CanSelect(id, authz.TableUserRoles, r) == nil {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// CreateRole grants a role to a user. Admin only. The (user, role,
// scope) triple must be unique; a scoped and a global grant of the same
// role may coexist.
func (s *Store) CreateRole(id authz.Identity, ur *models.UserRole) error {
	if err := s.policy.CanMutate(id, authz.OpInsert, authz.TableUserRoles); err != nil {
		return err
	}
	if !models.ValidRole(ur.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, ur.Role)
	}
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", ur.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: user %d", ErrInvalidRef, ur.UserID)
	}
	if ur.RestaurantID != nil {
		if err := s.db.Model(&models.Restaurant{}).Where("id = ?", *ur.RestaurantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: restaurant %d", ErrInvalidRef, *ur.RestaurantID)
		}
	}
	dup := s.db.Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", ur.UserID, ur.Role)
	if ur.RestaurantID == nil {
		dup = dup.Where("restaurant_id IS NULL")
	} else {
		dup = dup.Where("restaurant_id = ?", *ur.RestaurantID)
	}
	if err := dup.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: grant (%d, %s)", ErrConflict, ur.UserID, ur.Role)
	}
	ur.CreatedAt = zeroTime
	return s.db.Create(ur).Error
}

// DeleteRole revokes a grant. Admin only.
func (s *Store) DeleteRole(id authz.Identity, roleID uint) error {
	if err := s.policy.CanMutate(id, authz.OpDelete, authz.TableUserRoles); err != nil {
		return err
	}
	res := s.db.Delete(&models.UserRole{}, roleID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
