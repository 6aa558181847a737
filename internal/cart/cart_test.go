package cart

import (
	"errors"
	"math"
	"testing"

	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
)

func dosaInput() ItemInput {
	return ItemInput{
		ID:       "dish-1",
		Name:     "Masala Dosa",
		Price:    80,
		Category: "South Indian",
		Slug:     "udupi-grand",
	}
}

func TestAddBindsSlugAndAppends(t *testing.T) {
	t.Parallel()

	c, err := NewCart().Add(dosaInput(), nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if c.RestaurantSlug() != "udupi-grand" {
		t.Fatalf("expected cart bound to udupi-grand, got %q", c.RestaurantSlug())
	}
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("expected single line with quantity 1, got %+v", items)
	}
}

func TestAddSameIDIncrementsQuantity(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	c, err := c.Add(dosaInput(), nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected merged line with quantity 2, got %+v", items)
	}
}

func TestAddFromOtherRestaurantDeclinedIsNoOp(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)

	other := dosaInput()
	other.ID = "dish-9"
	other.Slug = "biryani-house"

	next, err := c.Add(other, RejectSwitch)
	if !errors.Is(err, ErrRestaurantConflict) {
		t.Fatalf("expected restaurant conflict, got %v", err)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT code, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["bound_slug"] != "udupi-grand" {
		t.Fatalf("expected bound slug in details, got %v", typed.Details())
	}
	if next.RestaurantSlug() != "udupi-grand" || len(next.Items()) != 1 {
		t.Fatalf("declined switch must leave cart untouched, got %+v", next)
	}
}

func TestAddFromOtherRestaurantAcceptedReplacesCart(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	c = c.UpdateQuantity("dish-1", 5)

	other := dosaInput()
	other.ID = "dish-9"
	other.Name = "Chicken Biryani"
	other.Slug = "biryani-house"

	next, err := c.Add(other, AcceptSwitch)
	if err != nil {
		t.Fatalf("accepted switch failed: %v", err)
	}
	items := next.Items()
	if len(items) != 1 || items[0].ID != "dish-9" || items[0].Quantity != 1 {
		t.Fatalf("expected cart replaced with single new item, got %+v", items)
	}
	if next.RestaurantSlug() != "biryani-house" {
		t.Fatalf("expected rebind to biryani-house, got %q", next.RestaurantSlug())
	}
}

func TestAddValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input ItemInput
	}{
		{"missing id", ItemInput{Name: "x", Slug: "s", Price: 1}},
		{"missing name", ItemInput{ID: "1", Slug: "s", Price: 1}},
		{"missing slug", ItemInput{ID: "1", Name: "x", Price: 1}},
		{"negative price", ItemInput{ID: "1", Name: "x", Slug: "s", Price: -1}},
		{"nan price", ItemInput{ID: "1", Name: "x", Slug: "s", Price: math.NaN()}},
		{"inf price", ItemInput{ID: "1", Name: "x", Slug: "s", Price: math.Inf(1)}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCart().Add(tc.input, nil)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRemoveLastItemUnbindsSlug(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	c = c.Remove("dish-1")
	if !c.Empty() {
		t.Fatalf("expected empty cart, got %+v", c.Items())
	}
	if c.RestaurantSlug() != "" {
		t.Fatalf("expected slug unbound, got %q", c.RestaurantSlug())
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	next := c.Remove("nope")
	if len(next.Items()) != 1 || next.RestaurantSlug() != "udupi-grand" {
		t.Fatalf("unknown id should not change the cart, got %+v", next)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	c = c.UpdateQuantity("dish-1", 0)
	if !c.Empty() || c.RestaurantSlug() != "" {
		t.Fatalf("qty 0 must remove the line and unbind, got %+v slug=%q", c.Items(), c.RestaurantSlug())
	}
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	c = c.UpdateQuantity("dish-1", 7)
	if got := c.Items()[0].Quantity; got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}
	if c.Count() != 7 {
		t.Fatalf("expected count 7, got %d", c.Count())
	}
}

func TestSubtotalAndCount(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	idli := dosaInput()
	idli.ID = "dish-2"
	idli.Name = "Idli Vada"
	idli.Price = 60
	c, _ = c.Add(idli, nil)
	c = c.UpdateQuantity("dish-1", 2)

	if c.Count() != 3 {
		t.Fatalf("expected count 3, got %d", c.Count())
	}
	if got := c.Subtotal(); got != 220 {
		t.Fatalf("expected subtotal 220, got %v", got)
	}
}

func TestClearEmptiesAndUnbinds(t *testing.T) {
	t.Parallel()

	c, _ := NewCart().Add(dosaInput(), nil)
	c = c.Clear()
	if !c.Empty() || c.RestaurantSlug() != "" {
		t.Fatalf("clear must empty and unbind, got %+v slug=%q", c.Items(), c.RestaurantSlug())
	}
}

func TestCartValueSemantics(t *testing.T) {
	t.Parallel()

	original, _ := NewCart().Add(dosaInput(), nil)
	mutated := original.UpdateQuantity("dish-1", 9)

	if original.Items()[0].Quantity != 1 {
		t.Fatalf("mutation leaked into the original cart: %+v", original.Items())
	}
	if mutated.Items()[0].Quantity != 9 {
		t.Fatalf("expected updated copy, got %+v", mutated.Items())
	}
}
