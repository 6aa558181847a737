package cart

import (
	"errors"
	"math"
	"strings"

	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
)

// ErrRestaurantConflict signals that an add was declined because the cart is
// bound to a different restaurant. Wrapped errors carry the bound slug in details.
var ErrRestaurantConflict = errors.New("cart is bound to another restaurant")

// SwitchConfirmer decides whether a cart bound to current may be replaced by
// an item from next. The zero behavior everywhere is to decline.
type SwitchConfirmer func(current, next string) bool

// RejectSwitch is the default confirmer: never abandon an existing cart.
func RejectSwitch(string, string) bool { return false }

// AcceptSwitch always allows the replacement.
func AcceptSwitch(string, string) bool { return true }

// LineItem is one dish entry in a cart.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
	Taste    string  `json:"taste,omitempty"`
	Slug     string  `json:"slug"`
	Quantity int     `json:"quantity"`
}

// ItemInput is the boundary payload for adding a dish to the cart.
type ItemInput struct {
	ID       string
	Name     string
	Price    float64
	Image    string
	Category string
	Taste    string
	Slug     string
}

// Validate rejects payloads that would corrupt the cart (missing id, NaN price).
func (in ItemInput) Validate() error {
	switch {
	case strings.TrimSpace(in.ID) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	case strings.TrimSpace(in.Name) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	case strings.TrimSpace(in.Slug) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant slug is required")
	case math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "item price must be a non-negative number")
	}
	return nil
}

// Cart holds the line items and the restaurant the cart is bound to.
// The slug is empty exactly when the cart is empty.
type Cart struct {
	items          []LineItem
	restaurantSlug string
}

// NewCart returns an empty, unbound cart.
func NewCart() Cart {
	return Cart{}
}

// Restore rebuilds a cart from persisted state without re-running add semantics.
func Restore(items []LineItem, slug string) Cart {
	if len(items) == 0 {
		return Cart{}
	}
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return Cart{items: copied, restaurantSlug: slug}
}

// Items returns a copy of the line items.
func (c Cart) Items() []LineItem {
	if len(c.items) == 0 {
		return nil
	}
	copied := make([]LineItem, len(c.items))
	copy(copied, c.items)
	return copied
}

// RestaurantSlug returns the bound restaurant, empty when unbound.
func (c Cart) RestaurantSlug() string { return c.restaurantSlug }

// Empty reports whether the cart has no items.
func (c Cart) Empty() bool { return len(c.items) == 0 }

// Count returns the total quantity across all line items.
func (c Cart) Count() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of price * quantity across all line items.
func (c Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Add inserts the item, increments an existing line, or replaces the whole
// cart when the confirmer accepts a restaurant switch. A declined switch
// returns ErrRestaurantConflict and leaves the cart untouched.
func (c Cart) Add(input ItemInput, confirm SwitchConfirmer) (Cart, error) {
	if err := input.Validate(); err != nil {
		return c, err
	}
	if confirm == nil {
		confirm = RejectSwitch
	}

	if !c.Empty() && c.restaurantSlug != input.Slug {
		if !confirm(c.restaurantSlug, input.Slug) {
			conflict := pkgerrors.Wrap(pkgerrors.CodeConflict, ErrRestaurantConflict, "cart is bound to another restaurant")
			return c, conflict.WithDetails(map[string]string{
				"bound_slug": c.restaurantSlug,
			})
		}
		return Cart{
			items:          []LineItem{lineFromInput(input)},
			restaurantSlug: input.Slug,
		}, nil
	}

	next := c.Items()
	for i := range next {
		if next[i].ID == input.ID {
			next[i].Quantity++
			return Cart{items: next, restaurantSlug: c.restaurantSlug}, nil
		}
	}
	next = append(next, lineFromInput(input))
	return Cart{items: next, restaurantSlug: input.Slug}, nil
}

// Remove deletes the line item with the given id. Unknown ids are a no-op.
// The slug is unbound when the last item leaves.
func (c Cart) Remove(id string) Cart {
	next := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if len(next) == 0 {
		return Cart{}
	}
	return Cart{items: next, restaurantSlug: c.restaurantSlug}
}

// UpdateQuantity sets the quantity for the line item; qty <= 0 removes it.
func (c Cart) UpdateQuantity(id string, qty int) Cart {
	if qty <= 0 {
		return c.Remove(id)
	}
	next := c.Items()
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = qty
		}
	}
	return Cart{items: next, restaurantSlug: c.restaurantSlug}
}

// Clear empties the cart and unbinds the restaurant.
func (c Cart) Clear() Cart {
	return Cart{}
}

func lineFromInput(input ItemInput) LineItem {
	return LineItem{
		ID:       input.ID,
		Name:     input.Name,
		Price:    input.Price,
		Image:    input.Image,
		Category: input.Category,
		Taste:    input.Taste,
		Slug:     input.Slug,
		Quantity: 1,
	}
}
