package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/internal/dishes"
	"github.com/arjunpatwa/qrmenu-backend/internal/restaurants"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
)

type restaurantLoader interface {
	GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
}

type dishLister interface {
	List(ctx context.Context, restaurantID uuid.UUID, filter dishes.ListFilter) ([]dishes.DishDTO, string, error)
	Get(ctx context.Context, restaurantID, dishID uuid.UUID) (*dishes.DishDTO, error)
}

// MenuView is the public menu page: profile plus a filtered dish listing.
type MenuView struct {
	Restaurant *restaurants.PublicRestaurantDTO `json:"restaurant"`
	Dishes     []dishes.DishDTO                 `json:"dishes"`
	NextCursor string                           `json:"next_cursor,omitempty"`
}

// Service serves the diner-facing menu surface.
type Service interface {
	GetMenu(ctx context.Context, slug string, filter dishes.ListFilter) (*MenuView, error)
	GetDish(ctx context.Context, slug string, dishID uuid.UUID) (*dishes.DishDTO, error)
}

type service struct {
	restaurants restaurantLoader
	dishes      dishLister
}

// NewService builds the public menu service.
func NewService(restaurantsSvc restaurantLoader, dishesSvc dishLister) (Service, error) {
	if restaurantsSvc == nil {
		return nil, fmt.Errorf("restaurant loader required")
	}
	if dishesSvc == nil {
		return nil, fmt.Errorf("dish lister required")
	}
	return &service{restaurants: restaurantsSvc, dishes: dishesSvc}, nil
}

// GetMenu returns the restaurant profile and its available dishes. Suspended
// tenants are indistinguishable from unknown slugs.
func (s *service) GetMenu(ctx context.Context, slug string, filter dishes.ListFilter) (*MenuView, error) {
	restaurant, err := s.visibleRestaurant(ctx, slug)
	if err != nil {
		return nil, err
	}

	filter.OnlyAvailable = true
	rows, next, err := s.dishes.List(ctx, restaurant.ID, filter)
	if err != nil {
		return nil, err
	}

	return &MenuView{
		Restaurant: restaurants.PublicFromModel(restaurant),
		Dishes:     rows,
		NextCursor: next,
	}, nil
}

// GetDish returns a single dish in the add-to-cart shape.
func (s *service) GetDish(ctx context.Context, slug string, dishID uuid.UUID) (*dishes.DishDTO, error) {
	restaurant, err := s.visibleRestaurant(ctx, slug)
	if err != nil {
		return nil, err
	}
	dish, err := s.dishes.Get(ctx, restaurant.ID, dishID)
	if err != nil {
		return nil, err
	}
	if !dish.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "dish not found")
	}
	return dish, nil
}

func (s *service) visibleRestaurant(ctx context.Context, slug string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if restaurant.BillingStatus == enums.BillingStatusSuspended {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
	}
	return restaurant, nil
}
