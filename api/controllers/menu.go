package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjunpatwa/qrmenu-backend/api/responses"
	"github.com/arjunpatwa/qrmenu-backend/api/validators"
	"github.com/arjunpatwa/qrmenu-backend/internal/dishes"
	"github.com/arjunpatwa/qrmenu-backend/internal/menu"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

// PublicMenu serves the diner-facing menu page for a restaurant slug.
func PublicMenu(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := dishes.ListFilter{
			Category:    validators.SanitizeString(r.URL.Query().Get("category"), 120),
			Subcategory: validators.SanitizeString(r.URL.Query().Get("subcategory"), 120),
			Taste:       validators.SanitizeString(r.URL.Query().Get("taste"), 120),
			Query:       validators.SanitizeString(r.URL.Query().Get("q"), 120),
			Page: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		}

		view, err := svc.GetMenu(r.Context(), slug, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// PublicDish serves a single dish in the add-to-cart shape.
func PublicDish(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		dishID, err := validators.ParsePathUUID(chi.URLParam(r, "dishId"), "dishId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.GetDish(r.Context(), slug, dishID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dish)
	}
}
