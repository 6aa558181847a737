package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arjunpatwa/qrmenu-backend/api/responses"
	"github.com/arjunpatwa/qrmenu-backend/api/validators"
	"github.com/arjunpatwa/qrmenu-backend/internal/restaurants"
	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

type onboardBody struct {
	Slug       string `json:"slug" validate:"required,max=80"`
	Name       string `json:"name" validate:"required,max=160"`
	OwnerEmail string `json:"owner_email" validate:"required,email"`
	OwnerName  string `json:"owner_name" validate:"required,max=160"`
}

type billingStatusBody struct {
	Status string `json:"status" validate:"required"`
}

type restaurantListResponse struct {
	Restaurants []restaurants.RestaurantDTO `json:"restaurants"`
	NextCursor  string                      `json:"next_cursor,omitempty"`
}

type impersonateResponse struct {
	AccessToken string                     `json:"access_token"`
	Restaurant  *restaurants.RestaurantDTO `json:"restaurant"`
}

// AdminListRestaurants pages through all tenants.
func AdminListRestaurants(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, next, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, restaurantListResponse{Restaurants: rows, NextCursor: next})
	}
}

// AdminOnboardRestaurant creates a tenant plus its owner account and returns
// the one-time password for handover.
func AdminOnboardRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body onboardBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Onboard(r.Context(), restaurants.OnboardInput{
			Slug:       body.Slug,
			Name:       body.Name,
			OwnerEmail: body.OwnerEmail,
			OwnerName:  body.OwnerName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AdminGetRestaurant returns a tenant's full profile.
func AdminGetRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := validators.ParsePathUUID(chi.URLParam(r, "restaurantId"), "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.GetProfile(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// AdminUpdateRestaurant lets support edit any tenant profile.
func AdminUpdateRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := validators.ParsePathUUID(chi.URLParam(r, "restaurantId"), "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateProfileBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.UpdateProfile(r.Context(), restaurantID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// AdminSetBillingStatus moves a tenant between active, past_due, and
// suspended. Suspended tenants disappear from the public surface.
func AdminSetBillingStatus(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := validators.ParsePathUUID(chi.URLParam(r, "restaurantId"), "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body billingStatusBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.SetBillingStatus(r.Context(), restaurantID, enums.BillingStatus(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// AdminImpersonateRestaurant mints an owner-scoped token flagged as
// impersonated so support can see exactly what the owner sees.
func AdminImpersonateRestaurant(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := validators.ParsePathUUID(chi.URLParam(r, "restaurantId"), "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		token, profile, err := svc.Impersonate(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, impersonateResponse{AccessToken: token, Restaurant: profile})
	}
}
