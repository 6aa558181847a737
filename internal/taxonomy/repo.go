package taxonomy

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/internal/repo"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
)

// Repository handles taxonomy persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to taxonomy operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListCategories returns the restaurant's categories with subcategories, in
// display order.
func (r *Repository) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, name ASC")
		}).
		Where("restaurant_id = ?", restaurantID).
		Order("position ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory persists a new category row.
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Create(category).Error
}

// FindCategory loads a category scoped to its restaurant.
func (r *Repository) FindCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, categoryID).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes the category; subcategories cascade.
func (r *Repository) DeleteCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) error {
	result := r.DB(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, categoryID).
		Delete(&models.Category{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSubcategory persists a new subcategory row.
func (r *Repository) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	return r.DB(ctx).Create(sub).Error
}

// DeleteSubcategory removes a subcategory under the given category.
func (r *Repository) DeleteSubcategory(ctx context.Context, categoryID, subID uuid.UUID) error {
	result := r.DB(ctx).
		Where("category_id = ? AND id = ?", categoryID, subID).
		Delete(&models.Subcategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListTastes returns the restaurant's taste labels sorted by name.
func (r *Repository) ListTastes(ctx context.Context, restaurantID uuid.UUID) ([]models.Taste, error) {
	var tastes []models.Taste
	err := r.DB(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&tastes).Error
	if err != nil {
		return nil, err
	}
	return tastes, nil
}

// CreateTaste persists a new taste row.
func (r *Repository) CreateTaste(ctx context.Context, taste *models.Taste) error {
	return r.DB(ctx).Create(taste).Error
}

// DeleteTaste removes a taste label scoped to its restaurant.
func (r *Repository) DeleteTaste(ctx context.Context, restaurantID, tasteID uuid.UUID) error {
	result := r.DB(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, tasteID).
		Delete(&models.Taste{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasCategory reports whether the restaurant owns a category with the name.
func (r *Repository) HasCategory(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Category{}).
		Where("restaurant_id = ? AND name = ?", restaurantID, name).
		Count(&count).Error
	return count > 0, err
}

// HasSubcategory reports whether the named subcategory exists under the named category.
func (r *Repository) HasSubcategory(ctx context.Context, restaurantID uuid.UUID, category, name string) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Subcategory{}).
		Joins("JOIN categories ON categories.id = subcategories.category_id").
		Where("categories.restaurant_id = ? AND categories.name = ? AND subcategories.name = ?", restaurantID, category, name).
		Count(&count).Error
	return count > 0, err
}

// HasTaste reports whether the restaurant owns a taste label with the name.
func (r *Repository) HasTaste(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Taste{}).
		Where("restaurant_id = ? AND name = ?", restaurantID, name).
		Count(&count).Error
	return count > 0, err
}
