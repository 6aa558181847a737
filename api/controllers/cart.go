package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjunpatwa/qrmenu-backend/api/middleware"
	"github.com/arjunpatwa/qrmenu-backend/api/responses"
	"github.com/arjunpatwa/qrmenu-backend/api/validators"
	"github.com/arjunpatwa/qrmenu-backend/internal/cart"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
)

type cartView struct {
	Items          []cart.LineItem `json:"cart"`
	RestaurantSlug string          `json:"restaurant_slug,omitempty"`
	Count          int             `json:"count"`
	Subtotal       float64         `json:"subtotal"`
}

type cartSummaryView struct {
	Items          []cart.LineItem `json:"cart"`
	RestaurantSlug string          `json:"restaurant_slug,omitempty"`
	Totals         cart.Totals     `json:"totals"`
	HideTotal      bool            `json:"hide_total"`
}

type addItemBody struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	Image          string  `json:"image"`
	Category       string  `json:"category"`
	Taste          string  `json:"taste"`
	RestaurantSlug string  `json:"restaurant_slug" validate:"required"`
	ReplaceCart    bool    `json:"replace_cart"`
}

type updateQuantityBody struct {
	Quantity int `json:"quantity"`
}

func newCartView(c cart.Cart) cartView {
	items := c.Items()
	if items == nil {
		items = []cart.LineItem{}
	}
	return cartView{
		Items:          items,
		RestaurantSlug: c.RestaurantSlug(),
		Count:          c.Count(),
		Subtotal:       c.Subtotal(),
	}
}

func cartSession(r *http.Request) (string, error) {
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return sessionID, nil
}

// CartFetch returns the session cart, empty when nothing is stored.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(current))
	}
}

// CartAddItem adds a dish to the cart. Adding from a different restaurant
// fails with a conflict unless the caller sets replace_cart, which empties
// the cart and rebinds it.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addItemBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirm := cart.RejectSwitch
		if body.ReplaceCart {
			confirm = cart.AcceptSwitch
		}

		current, err := svc.AddItem(r.Context(), sessionID, cart.ItemInput{
			ID:       body.ID,
			Name:     body.Name,
			Price:    body.Price,
			Image:    body.Image,
			Category: body.Category,
			Taste:    body.Taste,
			Slug:     body.RestaurantSlug,
		}, confirm)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(current))
	}
}

// CartUpdateItem sets a line quantity; zero or below removes the line.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateQuantityBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.UpdateQuantity(r.Context(), sessionID, chi.URLParam(r, "itemId"), body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(current))
	}
}

// CartRemoveItem drops a line item entirely.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(current))
	}
}

// CartClear empties the cart and deletes the stored snapshot.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(cart.NewCart()))
	}
}

// CartSummary returns the cart with its GST breakdown.
func CartSummary(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := summary.Cart.Items()
		if items == nil {
			items = []cart.LineItem{}
		}
		responses.WriteSuccess(w, cartSummaryView{
			Items:          items,
			RestaurantSlug: summary.Cart.RestaurantSlug(),
			Totals:         summary.Totals,
			HideTotal:      summary.HideTotal,
		})
	}
}
