package auth

import (
	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/internal/users"
)

// LoginRequest carries the dashboard credentials.
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse returns the minted token and the authenticated identity.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	User         *users.UserDTO `json:"user"`
	RestaurantID *uuid.UUID     `json:"restaurant_id,omitempty"`
}
