package dishes

import (
	"time"

	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

// DishDTO is the dish shape served to both dashboards and the public menu.
// It carries everything the add-to-cart payload needs.
type DishDTO struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Category     string    `json:"category"`
	Subcategory  *string   `json:"subcategory,omitempty"`
	Taste        *string   `json:"taste,omitempty"`
	IsVeg        bool      `json:"is_veg"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateInput captures a new dish for a restaurant.
type CreateInput struct {
	Name        string
	Description *string
	Price       float64
	ImageURL    *string
	Category    string
	Subcategory *string
	Taste       *string
	IsVeg       bool
	IsAvailable *bool
}

// UpdateInput captures the mutable dish fields. Nil pointers leave the stored
// value alone.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	Subcategory *string
	Taste       *string
	IsVeg       *bool
	IsAvailable *bool
}

// ListFilter narrows a dish listing. Zero values mean "no filter".
type ListFilter struct {
	Category      string
	Subcategory   string
	Taste         string
	Query         string
	OnlyAvailable bool
	Page          pagination.Params
}

// FromModel maps the persisted dish into a DTO.
func FromModel(m *models.Dish) *DishDTO {
	if m == nil {
		return nil
	}
	return &DishDTO{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		ImageURL:     m.ImageURL,
		Category:     m.Category,
		Subcategory:  m.Subcategory,
		Taste:        m.Taste,
		IsVeg:        m.IsVeg,
		IsAvailable:  m.IsAvailable,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToModel prepares the GORM model from the creation input.
func (c CreateInput) ToModel(restaurantID uuid.UUID) *models.Dish {
	dish := &models.Dish{
		RestaurantID: restaurantID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		ImageURL:     c.ImageURL,
		Category:     c.Category,
		Subcategory:  c.Subcategory,
		Taste:        c.Taste,
		IsVeg:        c.IsVeg,
		IsAvailable:  true,
	}
	if c.IsAvailable != nil {
		dish.IsAvailable = *c.IsAvailable
	}
	return dish
}
