package models

import "time"

type Restaurant struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	Slug           string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description    string  `gorm:"type:text" json:"description"`
	PrimaryColor   string  `gorm:"type:varchar(7)" json:"primary_color"`
	SecondaryColor string  `gorm:"type:varchar(7)" json:"secondary_color"`
	LogoURL        *string `gorm:"type:varchar(255)" json:"logo_url"`
	BannerImageURL *string `gorm:"type:varchar(255)" json:"banner_image_url"`
	Address        string  `gorm:"type:varchar(255)" json:"address"`
	Phone          string  `gorm:"type:varchar(50)" json:"phone"`
	Email          string  `gorm:"type:varchar(255)" json:"email"`
	IsActive       bool    `gorm:"not null" json:"is_active"`

	Categories []MenuCategory `gorm:"foreignKey:RestaurantID" json:"categories,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// PubliclyVisible reports whether the row may be read without any role grant.
func (r Restaurant) PubliclyVisible() bool {
	return r.IsActive
}
