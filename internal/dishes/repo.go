package dishes

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/internal/repo"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

// Repository handles dish persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to dish operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create persists a new dish row.
func (r *Repository) Create(ctx context.Context, dish *models.Dish) error {
	if dish == nil {
		return gorm.ErrInvalidData
	}
	return r.DB(ctx).Create(dish).Error
}

// FindForRestaurant loads a dish scoped to its restaurant, so one tenant can
// never address another tenant's rows.
func (r *Repository) FindForRestaurant(ctx context.Context, restaurantID, dishID uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	if err := r.DB(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, dishID).
		First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// List returns a filtered dish page for the restaurant, keyset-paginated.
func (r *Repository) List(ctx context.Context, restaurantID uuid.UUID, filter ListFilter) ([]models.Dish, string, error) {
	limit := pagination.NormalizeLimit(filter.Page.Limit)

	query := r.DB(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.Taste != "" {
		query = query.Where("taste = ?", filter.Taste)
	}
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		needle := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", needle, needle)
	}

	cursor, err := pagination.ParseCursor(filter.Page.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Dish
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// Update saves the provided dish.
func (r *Repository) Update(ctx context.Context, dish *models.Dish) error {
	if dish == nil {
		return gorm.ErrInvalidData
	}
	return r.DB(ctx).Save(dish).Error
}

// Delete removes the dish scoped to its restaurant.
func (r *Repository) Delete(ctx context.Context, restaurantID, dishID uuid.UUID) error {
	result := r.DB(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, dishID).
		Delete(&models.Dish{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByCategory reports how many dishes reference the category label.
func (r *Repository) CountByCategory(ctx context.Context, restaurantID uuid.UUID, category string) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Dish{}).
		Where("restaurant_id = ? AND category = ?", restaurantID, category).
		Count(&count).Error
	return count, err
}
