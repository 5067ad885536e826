package models

import "gorm.io/gorm"

// Product represents a menu item.
type Product struct {
	ID              string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Description     string  `json:"description" validate:"omitempty,max=500"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Image           string  `json:"image" validate:"omitempty,max=255"`
	PrepTimeMinutes int     `json:"prep_time_minutes" validate:"gte=0"`
	Available       bool    `json:"available"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductDay links a product to a weekday on which it can be ordered.
// Day names are stored as they came from the admin UI and may carry accents
// ("Miércoles"); comparisons must normalize first.
type ProductDay struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID string `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Day       string `json:"day" validate:"required"`
}
