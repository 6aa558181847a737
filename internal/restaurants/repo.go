package restaurants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/internal/repo"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

// Repository handles restaurant persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to restaurant operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a restaurant by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindBySlug loads a restaurant by its public slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB(ctx).Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// FindByOwner returns the restaurant owned by the provided user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB(ctx).Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Update saves the provided restaurant.
func (r *Repository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant == nil {
		return gorm.ErrInvalidData
	}
	return r.DB(ctx).Save(restaurant).Error
}

// List returns a roster page ordered by newest first, keyset-paginated.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Restaurant, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.DB(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Restaurant
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

// CreateWithTx persists a new restaurant inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, restaurant *models.Restaurant) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if restaurant == nil {
		return gorm.ErrInvalidData
	}
	return tx.Create(restaurant).Error
}
