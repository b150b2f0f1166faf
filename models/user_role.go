package models

import "time"

// Role names form a closed set.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// ValidRole reports whether name is one of the known role names.
func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// UserRole grants a role to a user, optionally scoped to one restaurant.
// A NULL RestaurantID denotes a global grant. The (user, role, scope)
// triple is unique.
type UserRole struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;uniqueIndex:idx_user_role_scope" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Role         string      `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_role_scope" json:"role"`
	RestaurantID *uint       `gorm:"uniqueIndex:idx_user_role_scope" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
}

// OwnerID identifies the user a grant row belongs to.
func (ur UserRole) OwnerID() uint {
	return ur.UserID
}
