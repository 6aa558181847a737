package controllers

import (
	"net/http"

	"github.com/arjunpatwa/qrmenu-backend/api/responses"
	"github.com/arjunpatwa/qrmenu-backend/api/validators"
	"github.com/arjunpatwa/qrmenu-backend/internal/restaurants"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
	"github.com/arjunpatwa/qrmenu-backend/pkg/types"
)

type updateProfileBody struct {
	Name         *string             `json:"name"`
	Description  *string             `json:"description"`
	Phone        *string             `json:"phone"`
	Email        *string             `json:"email"`
	Address      *string             `json:"address"`
	OpeningHours *types.OpeningHours `json:"opening_hours"`
	HeroImages   *[]string           `json:"hero_images"`
	LogoURL      *string             `json:"logo_url"`
	QRCodeURL    *string             `json:"qr_code_url"`
	HideTotal    *bool               `json:"hide_total"`
	CGSTBps      *int                `json:"cgst_bps"`
	SGSTBps      *int                `json:"sgst_bps"`
}

func (b updateProfileBody) toInput() restaurants.UpdateInput {
	return restaurants.UpdateInput{
		Name:         b.Name,
		Description:  b.Description,
		Phone:        b.Phone,
		Email:        b.Email,
		Address:      b.Address,
		OpeningHours: b.OpeningHours,
		HeroImages:   b.HeroImages,
		LogoURL:      b.LogoURL,
		QRCodeURL:    b.QRCodeURL,
		HideTotal:    b.HideTotal,
		CGSTBps:      b.CGSTBps,
		SGSTBps:      b.SGSTBps,
	}
}

// OwnerProfile returns the full tenant profile for the dashboard.
func OwnerProfile(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := restaurantScope(r)
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

// OwnerUpdateProfile applies a partial profile update.
func OwnerUpdateProfile(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := restaurantScope(r)
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
