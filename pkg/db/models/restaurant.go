package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	"github.com/arjunpatwa/qrmenu-backend/pkg/types"
)

// Restaurant represents the canonical tenant model. The slug doubles as the
// public URL segment and as the cart's restaurant-lock key.
type Restaurant struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug          string              `gorm:"column:slug;not null;uniqueIndex"`
	Name          string              `gorm:"column:name;not null"`
	Description   *string             `gorm:"column:description"`
	Phone         *string             `gorm:"column:phone"`
	Email         *string             `gorm:"column:email"`
	Address       *string             `gorm:"column:address"`
	OpeningHours  types.OpeningHours  `gorm:"column:opening_hours;type:jsonb"`
	HeroImages    pq.StringArray      `gorm:"column:hero_images;type:text[]"`
	LogoURL       *string             `gorm:"column:logo_url"`
	QRCodeURL     *string             `gorm:"column:qr_code_url"`
	HideTotal     bool                `gorm:"column:hide_total;not null;default:false"`
	CGSTBps       int                 `gorm:"column:cgst_bps;not null;default:250"`
	SGSTBps       int                 `gorm:"column:sgst_bps;not null;default:250"`
	BillingStatus enums.BillingStatus `gorm:"column:billing_status;not null;default:'active'"`
	OwnerID       uuid.UUID           `gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
