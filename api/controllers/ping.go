package controllers

import (
	"net/http"

	"github.com/arjunpatwa/qrmenu-backend/api/middleware"
	"github.com/arjunpatwa/qrmenu-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func OwnerPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "owner", "status": "ok"}
		if restaurant := middleware.RestaurantIDFromContext(r.Context()); restaurant != "" {
			payload["restaurant_id"] = restaurant
		}
		responses.WriteSuccess(w, payload)
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "admin", "status": "ok"})
	}
}
