package controllers

import (
	"net/http"

	"github.com/arjunpatwa/qrmenu-backend/api/middleware"
	"github.com/arjunpatwa/qrmenu-backend/api/responses"
	"github.com/arjunpatwa/qrmenu-backend/api/validators"
	"github.com/arjunpatwa/qrmenu-backend/internal/auth"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body loginBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), auth.LoginRequest{
			Email:    body.Email,
			Password: body.Password,
			ClientIP: middleware.ClientIP(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
