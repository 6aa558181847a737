package auth

import (
	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	RestaurantID *uuid.UUID
	Role         enums.UserRole
	Impersonated bool
}

// AccessTokenClaims represents the typed JWT issued to dashboard clients.
// Impersonated marks tokens minted by a super admin acting as an owner.
type AccessTokenClaims struct {
	UserID       uuid.UUID      `json:"user_id"`
	RestaurantID *uuid.UUID     `json:"restaurant_id,omitempty"`
	Role         enums.UserRole `json:"role"`
	Impersonated bool           `json:"impersonated,omitempty"`
	jwt.RegisteredClaims
}
