package restaurants

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/arjunpatwa/qrmenu-backend/internal/users"
	pkgauth "github.com/arjunpatwa/qrmenu-backend/pkg/auth"
	"github.com/arjunpatwa/qrmenu-backend/pkg/config"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
	"github.com/arjunpatwa/qrmenu-backend/pkg/security"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type restaurantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	List(ctx context.Context, params pagination.Params) ([]models.Restaurant, string, error)
	CreateWithTx(tx *gorm.DB, restaurant *models.Restaurant) error
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateWithTx(tx *gorm.DB, dto users.CreateUserDTO) (*models.User, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes restaurant profile and roster operations.
type Service interface {
	GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error)
	GetProfile(ctx context.Context, restaurantID uuid.UUID) (*RestaurantDTO, error)
	UpdateProfile(ctx context.Context, restaurantID uuid.UUID, input UpdateInput) (*RestaurantDTO, error)
	List(ctx context.Context, params pagination.Params) ([]RestaurantDTO, string, error)
	Onboard(ctx context.Context, input OnboardInput) (*OnboardResult, error)
	SetBillingStatus(ctx context.Context, restaurantID uuid.UUID, status enums.BillingStatus) (*RestaurantDTO, error)
	Impersonate(ctx context.Context, restaurantID uuid.UUID) (string, *RestaurantDTO, error)
}

type service struct {
	repo        restaurantRepository
	users       userRepository
	tx          txRunner
	passwordCfg config.PasswordConfig
	jwtCfg      config.JWTConfig
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo        restaurantRepository
	Users       userRepository
	Tx          txRunner
	PasswordCfg config.PasswordConfig
	JWTCfg      config.JWTConfig
}

// NewService constructs a restaurant service with the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("restaurant repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:        params.Repo,
		users:       params.Users,
		tx:          params.Tx,
		passwordCfg: params.PasswordCfg,
		jwtCfg:      params.JWTCfg,
	}, nil
}

// GetBySlug loads the raw restaurant row for the public slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	restaurant, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

// GetProfile returns the dashboard view of the restaurant.
func (s *service) GetProfile(ctx context.Context, restaurantID uuid.UUID) (*RestaurantDTO, error) {
	restaurant, err := s.findByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return FromModel(restaurant), nil
}

// UpdateProfile applies the provided fields and persists the profile.
func (s *service) UpdateProfile(ctx context.Context, restaurantID uuid.UUID, input UpdateInput) (*RestaurantDTO, error) {
	restaurant, err := s.findByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	applyUpdate(restaurant, input)
	if restaurant.CGSTBps < 0 || restaurant.SGSTBps < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rates must be non-negative")
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update restaurant")
	}
	return FromModel(restaurant), nil
}

// List returns a roster page for the super-admin dashboard.
func (s *service) List(ctx context.Context, params pagination.Params) ([]RestaurantDTO, string, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurants")
	}
	dtos := make([]RestaurantDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, next, nil
}

// Onboard creates the restaurant and its owner account atomically and returns
// the owner's one-time credential.
func (s *service) Onboard(ctx context.Context, input OnboardInput) (*OnboardResult, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !slugRe.MatchString(slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must be lowercase letters, digits and hyphens")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name is required")
	}
	if !strings.Contains(input.OwnerEmail, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid owner email")
	}

	tempPassword, err := security.GenerateTempPassword(16)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var restaurant *models.Restaurant
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		owner, err := s.users.CreateWithTx(tx, users.CreateUserDTO{
			Email:        input.OwnerEmail,
			Name:         input.OwnerName,
			PasswordHash: hash,
			Role:         enums.UserRoleOwner,
		})
		if err != nil {
			return err
		}

		restaurant = &models.Restaurant{
			Slug:          slug,
			Name:          strings.TrimSpace(input.Name),
			HeroImages:    pq.StringArray{},
			CGSTBps:       DefaultGSTBps,
			SGSTBps:       DefaultGSTBps,
			BillingStatus: enums.BillingStatusActive,
			OwnerID:       owner.ID,
		}
		return s.repo.CreateWithTx(tx, restaurant)
	})
	if txErr != nil {
		if db.IsUniqueViolation(txErr, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, txErr, "slug or owner email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "onboard restaurant")
	}

	return &OnboardResult{
		Restaurant:   FromModel(restaurant),
		OwnerEmail:   strings.ToLower(strings.TrimSpace(input.OwnerEmail)),
		TempPassword: tempPassword,
	}, nil
}

// SetBillingStatus transitions the tenant's billing state. Suspended
// restaurants drop out of public menu responses.
func (s *service) SetBillingStatus(ctx context.Context, restaurantID uuid.UUID, status enums.BillingStatus) (*RestaurantDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid billing status")
	}
	restaurant, err := s.findByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	restaurant.BillingStatus = status
	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update billing status")
	}
	return FromModel(restaurant), nil
}

// Impersonate mints an owner-scoped token for the restaurant, flagged so the
// audit trail can tell it apart from a real owner login.
func (s *service) Impersonate(ctx context.Context, restaurantID uuid.UUID) (string, *RestaurantDTO, error) {
	restaurant, err := s.findByID(ctx, restaurantID)
	if err != nil {
		return "", nil, err
	}
	owner, err := s.users.FindByID(ctx, restaurant.OwnerID)
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant owner")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:       owner.ID,
		RestaurantID: &restaurant.ID,
		Role:         enums.UserRoleOwner,
		Impersonated: true,
	})
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint impersonation token")
	}
	return token, FromModel(restaurant), nil
}

func (s *service) findByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

// DefaultGSTBps is the 2.5% per-component GST split applied to new tenants.
const DefaultGSTBps = 250

func applyUpdate(restaurant *models.Restaurant, input UpdateInput) {
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		restaurant.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		restaurant.Description = input.Description
	}
	if input.Phone != nil {
		restaurant.Phone = input.Phone
	}
	if input.Email != nil {
		restaurant.Email = input.Email
	}
	if input.Address != nil {
		restaurant.Address = input.Address
	}
	if input.OpeningHours != nil {
		restaurant.OpeningHours = *input.OpeningHours
	}
	if input.HeroImages != nil {
		restaurant.HeroImages = pq.StringArray(*input.HeroImages)
	}
	if input.LogoURL != nil {
		restaurant.LogoURL = input.LogoURL
	}
	if input.QRCodeURL != nil {
		restaurant.QRCodeURL = input.QRCodeURL
	}
	if input.HideTotal != nil {
		restaurant.HideTotal = *input.HideTotal
	}
	if input.CGSTBps != nil {
		restaurant.CGSTBps = *input.CGSTBps
	}
	if input.SGSTBps != nil {
		restaurant.SGSTBps = *input.SGSTBps
	}
}
