package models

import (
	"time"

	"github.com/google/uuid"
)

// Dish represents one menu entry of a restaurant.
type Dish struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Description  *string   `gorm:"column:description"`
	Price        float64   `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL     *string   `gorm:"column:image_url"`
	Category     string    `gorm:"column:category;not null"`
	Subcategory  *string   `gorm:"column:subcategory"`
	Taste        *string   `gorm:"column:taste"`
	IsVeg        bool      `gorm:"column:is_veg;not null;default:false"`
	IsAvailable  bool      `gorm:"column:is_available;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
