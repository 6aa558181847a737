package dishes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
)

type dishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	FindForRestaurant(ctx context.Context, restaurantID, dishID uuid.UUID) (*models.Dish, error)
	List(ctx context.Context, restaurantID uuid.UUID, filter ListFilter) ([]models.Dish, string, error)
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, restaurantID, dishID uuid.UUID) error
}

type taxonomyChecker interface {
	HasCategory(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error)
	HasSubcategory(ctx context.Context, restaurantID uuid.UUID, category, name string) (bool, error)
	HasTaste(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error)
}

// Service exposes owner dish CRUD plus the listing used by the public menu.
type Service interface {
	Create(ctx context.Context, restaurantID uuid.UUID, input CreateInput) (*DishDTO, error)
	Get(ctx context.Context, restaurantID, dishID uuid.UUID) (*DishDTO, error)
	List(ctx context.Context, restaurantID uuid.UUID, filter ListFilter) ([]DishDTO, string, error)
	Update(ctx context.Context, restaurantID, dishID uuid.UUID, input UpdateInput) (*DishDTO, error)
	Delete(ctx context.Context, restaurantID, dishID uuid.UUID) error
}

type service struct {
	repo     dishRepository
	taxonomy taxonomyChecker
}

// NewService builds a dish service backed by the provided repositories.
func NewService(repo dishRepository, taxonomy taxonomyChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dish repository required")
	}
	if taxonomy == nil {
		return nil, fmt.Errorf("taxonomy checker required")
	}
	return &service{repo: repo, taxonomy: taxonomy}, nil
}

// Create validates the payload against the restaurant's taxonomy and persists it.
func (s *service) Create(ctx context.Context, restaurantID uuid.UUID, input CreateInput) (*DishDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dish name is required")
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := s.checkLabels(ctx, restaurantID, input.Category, input.Subcategory, input.Taste); err != nil {
		return nil, err
	}

	dish := input.ToModel(restaurantID)
	if err := s.repo.Create(ctx, dish); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dish")
	}
	return FromModel(dish), nil
}

// Get loads a single dish scoped to the restaurant.
func (s *service) Get(ctx context.Context, restaurantID, dishID uuid.UUID) (*DishDTO, error) {
	dish, err := s.findDish(ctx, restaurantID, dishID)
	if err != nil {
		return nil, err
	}
	return FromModel(dish), nil
}

// List returns a filtered page of the restaurant's dishes.
func (s *service) List(ctx context.Context, restaurantID uuid.UUID, filter ListFilter) ([]DishDTO, string, error) {
	rows, next, err := s.repo.List(ctx, restaurantID, filter)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dishes")
	}
	dtos := make([]DishDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, next, nil
}

// Update applies the provided fields and persists the dish.
func (s *service) Update(ctx context.Context, restaurantID, dishID uuid.UUID, input UpdateInput) (*DishDTO, error) {
	dish, err := s.findDish(ctx, restaurantID, dishID)
	if err != nil {
		return nil, err
	}

	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
		dish.Price = *input.Price
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "dish name is required")
		}
		dish.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		dish.Description = input.Description
	}
	if input.ImageURL != nil {
		dish.ImageURL = input.ImageURL
	}

	category := dish.Category
	if input.Category != nil {
		category = *input.Category
	}
	subcategory := dish.Subcategory
	if input.Subcategory != nil {
		subcategory = input.Subcategory
	}
	taste := dish.Taste
	if input.Taste != nil {
		taste = input.Taste
	}
	if input.Category != nil || input.Subcategory != nil || input.Taste != nil {
		if err := s.checkLabels(ctx, restaurantID, category, subcategory, taste); err != nil {
			return nil, err
		}
		dish.Category = category
		dish.Subcategory = subcategory
		dish.Taste = taste
	}

	if input.IsVeg != nil {
		dish.IsVeg = *input.IsVeg
	}
	if input.IsAvailable != nil {
		dish.IsAvailable = *input.IsAvailable
	}

	if err := s.repo.Update(ctx, dish); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update dish")
	}
	return FromModel(dish), nil
}

// Delete removes the dish.
func (s *service) Delete(ctx context.Context, restaurantID, dishID uuid.UUID) error {
	if err := s.repo.Delete(ctx, restaurantID, dishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete dish")
	}
	return nil
}

func (s *service) findDish(ctx context.Context, restaurantID, dishID uuid.UUID) (*models.Dish, error) {
	dish, err := s.repo.FindForRestaurant(ctx, restaurantID, dishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dish")
	}
	return dish, nil
}

func (s *service) checkLabels(ctx context.Context, restaurantID uuid.UUID, category string, subcategory, taste *string) error {
	if strings.TrimSpace(category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	ok, err := s.taxonomy.HasCategory(ctx, restaurantID, category)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check category")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown category "+category)
	}

	if subcategory != nil && *subcategory != "" {
		ok, err := s.taxonomy.HasSubcategory(ctx, restaurantID, category, *subcategory)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check subcategory")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown subcategory "+*subcategory)
		}
	}
	if taste != nil && *taste != "" {
		ok, err := s.taxonomy.HasTaste(ctx, restaurantID, *taste)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check taste")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown taste "+*taste)
		}
	}
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative number")
	}
	return nil
}
