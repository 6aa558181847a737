package restaurants

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	"github.com/arjunpatwa/qrmenu-backend/pkg/types"
)

// RestaurantDTO exposes the full profile to owners and super admins.
type RestaurantDTO struct {
	ID            uuid.UUID           `json:"id"`
	Slug          string              `json:"slug"`
	Name          string              `json:"name"`
	Description   *string             `json:"description,omitempty"`
	Phone         *string             `json:"phone,omitempty"`
	Email         *string             `json:"email,omitempty"`
	Address       *string             `json:"address,omitempty"`
	OpeningHours  types.OpeningHours  `json:"opening_hours,omitempty"`
	HeroImages    []string            `json:"hero_images"`
	LogoURL       *string             `json:"logo_url,omitempty"`
	QRCodeURL     *string             `json:"qr_code_url,omitempty"`
	HideTotal     bool                `json:"hide_total"`
	CGSTBps       int                 `json:"cgst_bps"`
	SGSTBps       int                 `json:"sgst_bps"`
	BillingStatus enums.BillingStatus `json:"billing_status"`
	OwnerID       uuid.UUID           `json:"owner_id"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PublicRestaurantDTO is the profile served on the public menu. Billing and
// ownership details never leave the dashboard surfaces.
type PublicRestaurantDTO struct {
	Slug         string             `json:"slug"`
	Name         string             `json:"name"`
	Description  *string            `json:"description,omitempty"`
	Phone        *string            `json:"phone,omitempty"`
	Address      *string            `json:"address,omitempty"`
	OpeningHours types.OpeningHours `json:"opening_hours,omitempty"`
	HeroImages   []string           `json:"hero_images"`
	LogoURL      *string            `json:"logo_url,omitempty"`
	HideTotal    bool               `json:"hide_total"`
}

// OnboardInput captures a new restaurant plus its owner account.
type OnboardInput struct {
	Slug       string
	Name       string
	OwnerEmail string
	OwnerName  string
}

// OnboardResult returns the created tenant and the one-time owner credential.
type OnboardResult struct {
	Restaurant   *RestaurantDTO `json:"restaurant"`
	OwnerEmail   string         `json:"owner_email"`
	TempPassword string         `json:"temp_password"`
}

// UpdateInput captures the mutable profile fields. Nil pointers leave the
// stored value alone.
type UpdateInput struct {
	Name         *string
	Description  *string
	Phone        *string
	Email        *string
	Address      *string
	OpeningHours *types.OpeningHours
	HeroImages   *[]string
	LogoURL      *string
	QRCodeURL    *string
	HideTotal    *bool
	CGSTBps      *int
	SGSTBps      *int
}

// FromModel maps the persisted restaurant into the dashboard DTO.
func FromModel(m *models.Restaurant) *RestaurantDTO {
	if m == nil {
		return nil
	}
	return &RestaurantDTO{
		ID:            m.ID,
		Slug:          m.Slug,
		Name:          m.Name,
		Description:   m.Description,
		Phone:         m.Phone,
		Email:         m.Email,
		Address:       m.Address,
		OpeningHours:  m.OpeningHours,
		HeroImages:    heroImages(m.HeroImages),
		LogoURL:       m.LogoURL,
		QRCodeURL:     m.QRCodeURL,
		HideTotal:     m.HideTotal,
		CGSTBps:       m.CGSTBps,
		SGSTBps:       m.SGSTBps,
		BillingStatus: m.BillingStatus,
		OwnerID:       m.OwnerID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// PublicFromModel maps the persisted restaurant into the public menu DTO.
func PublicFromModel(m *models.Restaurant) *PublicRestaurantDTO {
	if m == nil {
		return nil
	}
	return &PublicRestaurantDTO{
		Slug:         m.Slug,
		Name:         m.Name,
		Description:  m.Description,
		Phone:        m.Phone,
		Address:      m.Address,
		OpeningHours: m.OpeningHours,
		HeroImages:   heroImages(m.HeroImages),
		LogoURL:      m.LogoURL,
		HideTotal:    m.HideTotal,
	}
}

func heroImages(arr pq.StringArray) []string {
	if len(arr) == 0 {
		return []string{}
	}
	return []string(arr)
}
