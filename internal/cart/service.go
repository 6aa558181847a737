package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
)

type restaurantLoader interface {
	GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
}

// SummaryView is the cart plus its derived tax panel for the bound restaurant.
type SummaryView struct {
	Cart      Cart
	Totals    Totals
	HideTotal bool
}

// Service exposes session-scoped cart operations. Every mutation runs
// load -> mutate -> save inside the calling request.
type Service interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	AddItem(ctx context.Context, sessionID string, input ItemInput, confirm SwitchConfirmer) (Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, itemID string, qty int) (Cart, error)
	RemoveItem(ctx context.Context, sessionID string, itemID string) (Cart, error)
	Clear(ctx context.Context, sessionID string) error
	Summary(ctx context.Context, sessionID string) (SummaryView, error)
}

type service struct {
	storage     Storage
	restaurants restaurantLoader
	logg        *logger.Logger
	ttl         time.Duration
	now         func() time.Time
}

// NewService builds the cart service backed by the provided snapshot storage.
func NewService(storage Storage, restaurants restaurantLoader, logg *logger.Logger, ttl time.Duration) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if restaurants == nil {
		return nil, fmt.Errorf("restaurant loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive")
	}
	return &service{
		storage:     storage,
		restaurants: restaurants,
		logg:        logg,
		ttl:         ttl,
		now:         time.Now,
	}, nil
}

// Get loads the current cart for the session, treating stale or unreadable
// snapshots as empty.
func (s *service) Get(ctx context.Context, sessionID string) (Cart, error) {
	return s.load(ctx, sessionID), nil
}

// AddItem adds the dish to the session cart and persists the result. The
// confirmer decides restaurant switches; a declined switch leaves the stored
// snapshot untouched.
func (s *service) AddItem(ctx context.Context, sessionID string, input ItemInput, confirm SwitchConfirmer) (Cart, error) {
	current := s.load(ctx, sessionID)
	next, err := current.Add(input, confirm)
	if err != nil {
		return current, err
	}
	if err := s.save(ctx, sessionID, next); err != nil {
		return current, err
	}
	return next, nil
}

// UpdateQuantity sets the line quantity; qty <= 0 removes the line.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, itemID string, qty int) (Cart, error) {
	current := s.load(ctx, sessionID)
	next := current.UpdateQuantity(itemID, qty)
	if err := s.save(ctx, sessionID, next); err != nil {
		return current, err
	}
	return next, nil
}

// RemoveItem drops the line item from the session cart.
func (s *service) RemoveItem(ctx context.Context, sessionID string, itemID string) (Cart, error) {
	current := s.load(ctx, sessionID)
	next := current.Remove(itemID)
	if err := s.save(ctx, sessionID, next); err != nil {
		return current, err
	}
	return next, nil
}

// Clear deletes the stored snapshot immediately.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.storage.Del(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart snapshot: %w", err)
	}
	return nil
}

// Summary computes the tax panel using the bound restaurant's configured
// rates, falling back to the default split when the cart is unbound.
func (s *service) Summary(ctx context.Context, sessionID string) (SummaryView, error) {
	current := s.load(ctx, sessionID)

	rates := DefaultTaxRates
	hideTotal := false
	if slug := current.RestaurantSlug(); slug != "" {
		restaurant, err := s.restaurants.GetBySlug(ctx, slug)
		if err == nil && restaurant != nil {
			rates = TaxRates{CGSTBps: restaurant.CGSTBps, SGSTBps: restaurant.SGSTBps}
			hideTotal = restaurant.HideTotal
		} else if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "slug", slug), "cart summary falling back to default tax rates")
		}
	}

	return SummaryView{
		Cart:      current,
		Totals:    ComputeTotals(current, rates),
		HideTotal: hideTotal,
	}, nil
}

func (s *service) load(ctx context.Context, sessionID string) Cart {
	payload, err := s.storage.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			s.logg.Error(ctx, "loading cart snapshot", err)
		}
		return NewCart()
	}

	loaded, fresh, err := DecodeSnapshot(payload, s.now(), s.ttl)
	if err != nil {
		s.logg.Error(ctx, "decoding cart snapshot", err)
		return NewCart()
	}
	if !fresh {
		// Stale snapshots are dropped unread, never partially adopted.
		if err := s.storage.Del(ctx, sessionID); err != nil {
			s.logg.Error(ctx, "deleting expired cart snapshot", err)
		}
		return NewCart()
	}
	return loaded
}

func (s *service) save(ctx context.Context, sessionID string, c Cart) error {
	if c.Empty() {
		if err := s.storage.Del(ctx, sessionID); err != nil {
			return fmt.Errorf("delete empty cart snapshot: %w", err)
		}
		return nil
	}

	payload, err := EncodeSnapshot(c, s.now())
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, sessionID, payload, s.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}
