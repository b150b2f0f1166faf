package models

import "time"

type MenuItem struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"not null;index" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    *string      `gorm:"type:varchar(255)" json:"image_url"`

	// Dietary flags. Vegetarian/vegan exclusivity is a client-side
	// convention, not a stored constraint.
	IsVegetarian bool `gorm:"not null" json:"is_vegetarian"`
	IsVegan      bool `gorm:"not null" json:"is_vegan"`
	IsSpicy      bool `gorm:"not null" json:"is_spicy"`

	IsAvailable  bool `gorm:"not null" json:"is_available"`
	DisplayOrder int  `gorm:"not null" json:"display_order"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (mi MenuItem) PubliclyVisible() bool {
	return mi.IsAvailable
}
