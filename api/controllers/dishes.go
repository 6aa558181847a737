package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/api/middleware"
	"github.com/arjunpatwa/qrmenu-backend/api/responses"
	"github.com/arjunpatwa/qrmenu-backend/api/validators"
	"github.com/arjunpatwa/qrmenu-backend/internal/dishes"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

type createDishBody struct {
	Name        string  `json:"name" validate:"required,max=160"`
	Description *string `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    *string `json:"image_url"`
	Category    string  `json:"category" validate:"required"`
	Subcategory *string `json:"subcategory"`
	Taste       *string `json:"taste"`
	IsVeg       bool    `json:"is_veg"`
	IsAvailable *bool   `json:"is_available"`
}

type updateDishBody struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Taste       *string  `json:"taste"`
	IsVeg       *bool    `json:"is_veg"`
	IsAvailable *bool    `json:"is_available"`
}

type dishListResponse struct {
	Dishes     []dishes.DishDTO `json:"dishes"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func restaurantScope(r *http.Request) (uuid.UUID, error) {
	raw := middleware.RestaurantIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "restaurant scope required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid restaurant scope")
	}
	return id, nil
}

// OwnerCreateDish adds a dish to the owner's menu.
func OwnerCreateDish(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := restaurantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createDishBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Create(r.Context(), restaurantID, dishes.CreateInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			Category:    body.Category,
			Subcategory: body.Subcategory,
			Taste:       body.Taste,
			IsVeg:       body.IsVeg,
			IsAvailable: body.IsAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dish)
	}
}

// OwnerListDishes returns the owner's dishes, including unavailable ones.
func OwnerListDishes(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := restaurantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		onlyAvailable, err := validators.ParseQueryBool(r, "only_available", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, next, err := svc.List(r.Context(), restaurantID, dishes.ListFilter{
			Category:      validators.SanitizeString(r.URL.Query().Get("category"), 120),
			Subcategory:   validators.SanitizeString(r.URL.Query().Get("subcategory"), 120),
			Taste:         validators.SanitizeString(r.URL.Query().Get("taste"), 120),
			Query:         validators.SanitizeString(r.URL.Query().Get("q"), 120),
			OnlyAvailable: onlyAvailable,
			Page: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dishListResponse{Dishes: rows, NextCursor: next})
	}
}

// OwnerGetDish returns one dish regardless of availability.
func OwnerGetDish(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := restaurantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dishID, err := validators.ParsePathUUID(chi.URLParam(r, "dishId"), "dishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Get(r.Context(), restaurantID, dishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dish)
	}
}

// OwnerUpdateDish applies a partial dish update.
func OwnerUpdateDish(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := restaurantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dishID, err := validators.ParsePathUUID(chi.URLParam(r, "dishId"), "dishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateDishBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Update(r.Context(), restaurantID, dishID, dishes.UpdateInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			Category:    body.Category,
			Subcategory: body.Subcategory,
			Taste:       body.Taste,
			IsVeg:       body.IsVeg,
			IsAvailable: body.IsAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dish)
	}
}

// OwnerDeleteDish removes a dish from the menu.
func OwnerDeleteDish(svc dishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := restaurantScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dishID, err := validators.ParsePathUUID(chi.URLParam(r, "dishId"), "dishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), restaurantID, dishID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
