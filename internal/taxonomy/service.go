package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
)

type taxonomyRepository interface {
	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	FindCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) (*models.Category, error)
	DeleteCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) error
	CreateSubcategory(ctx context.Context, sub *models.Subcategory) error
	DeleteSubcategory(ctx context.Context, categoryID, subID uuid.UUID) error
	ListTastes(ctx context.Context, restaurantID uuid.UUID) ([]models.Taste, error)
	CreateTaste(ctx context.Context, taste *models.Taste) error
	DeleteTaste(ctx context.Context, restaurantID, tasteID uuid.UUID) error
	HasCategory(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error)
	HasSubcategory(ctx context.Context, restaurantID uuid.UUID, category, name string) (bool, error)
	HasTaste(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error)
}

type dishCounter interface {
	CountByCategory(ctx context.Context, restaurantID uuid.UUID, category string) (int64, error)
}

// Service manages a restaurant's label sets.
type Service interface {
	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]CategoryDTO, error)
	CreateCategory(ctx context.Context, restaurantID uuid.UUID, name string, position int) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) error
	CreateSubcategory(ctx context.Context, restaurantID, categoryID uuid.UUID, name string, position int) (*SubcategoryDTO, error)
	DeleteSubcategory(ctx context.Context, restaurantID, categoryID, subID uuid.UUID) error
	ListTastes(ctx context.Context, restaurantID uuid.UUID) ([]TasteDTO, error)
	CreateTaste(ctx context.Context, restaurantID uuid.UUID, name string) (*TasteDTO, error)
	DeleteTaste(ctx context.Context, restaurantID, tasteID uuid.UUID) error

	HasCategory(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error)
	HasSubcategory(ctx context.Context, restaurantID uuid.UUID, category, name string) (bool, error)
	HasTaste(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error)
}

type service struct {
	repo   taxonomyRepository
	dishes dishCounter
}

// NewService builds a taxonomy service backed by the provided repositories.
func NewService(repo taxonomyRepository, dishes dishCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("taxonomy repository required")
	}
	if dishes == nil {
		return nil, fmt.Errorf("dish counter required")
	}
	return &service{repo: repo, dishes: dishes}, nil
}

// ListCategories returns the restaurant's menu sections in display order.
func (s *service) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *CategoryFromModel(&rows[i]))
	}
	return dtos, nil
}

// CreateCategory adds a new section label; duplicates are conflicts.
func (s *service) CreateCategory(ctx context.Context, restaurantID uuid.UUID, name string, position int) (*CategoryDTO, error) {
	name, err := cleanLabel(name)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.HasCategory(ctx, restaurantID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists")
	}

	category := &models.Category{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		Position:     position,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return CategoryFromModel(category), nil
}

// DeleteCategory removes the section unless dishes still reference it.
func (s *service) DeleteCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) error {
	category, err := s.repo.FindCategory(ctx, restaurantID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	inUse, err := s.dishes.CountByCategory(ctx, restaurantID, category.Name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count dishes in category")
	}
	if inUse > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "category is still used by dishes")
	}

	if err := s.repo.DeleteCategory(ctx, restaurantID, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

// CreateSubcategory adds a nested label under the category.
func (s *service) CreateSubcategory(ctx context.Context, restaurantID, categoryID uuid.UUID, name string, position int) (*SubcategoryDTO, error) {
	name, err := cleanLabel(name)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.FindCategory(ctx, restaurantID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	exists, err := s.repo.HasSubcategory(ctx, restaurantID, category.Name, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check subcategory")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "subcategory already exists")
	}

	sub := &models.Subcategory{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       name,
		Position:   position,
	}
	if err := s.repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subcategory")
	}
	return &SubcategoryDTO{ID: sub.ID, Name: sub.Name, Position: sub.Position}, nil
}

// DeleteSubcategory removes the nested label.
func (s *service) DeleteSubcategory(ctx context.Context, restaurantID, categoryID, subID uuid.UUID) error {
	if _, err := s.repo.FindCategory(ctx, restaurantID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.repo.DeleteSubcategory(ctx, categoryID, subID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "subcategory not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subcategory")
	}
	return nil
}

// ListTastes returns the restaurant's flat taste labels.
func (s *service) ListTastes(ctx context.Context, restaurantID uuid.UUID) ([]TasteDTO, error) {
	rows, err := s.repo.ListTastes(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tastes")
	}
	dtos := make([]TasteDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *TasteFromModel(&rows[i]))
	}
	return dtos, nil
}

// CreateTaste adds a flavor label; duplicates are conflicts.
func (s *service) CreateTaste(ctx context.Context, restaurantID uuid.UUID, name string) (*TasteDTO, error) {
	name, err := cleanLabel(name)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.HasTaste(ctx, restaurantID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check taste")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "taste already exists")
	}

	taste := &models.Taste{ID: uuid.New(), RestaurantID: restaurantID, Name: name}
	if err := s.repo.CreateTaste(ctx, taste); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create taste")
	}
	return TasteFromModel(taste), nil
}

// DeleteTaste removes the flavor label.
func (s *service) DeleteTaste(ctx context.Context, restaurantID, tasteID uuid.UUID) error {
	if err := s.repo.DeleteTaste(ctx, restaurantID, tasteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "taste not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete taste")
	}
	return nil
}

// HasCategory satisfies the dish service's label check.
func (s *service) HasCategory(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error) {
	return s.repo.HasCategory(ctx, restaurantID, name)
}

// HasSubcategory satisfies the dish service's label check.
func (s *service) HasSubcategory(ctx context.Context, restaurantID uuid.UUID, category, name string) (bool, error) {
	return s.repo.HasSubcategory(ctx, restaurantID, category, name)
}

// HasTaste satisfies the dish service's label check.
func (s *service) HasTaste(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error) {
	return s.repo.HasTaste(ctx, restaurantID, name)
}

func cleanLabel(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return name, nil
}
