package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arjunpatwa/qrmenu-backend/internal/auth"
	"github.com/arjunpatwa/qrmenu-backend/internal/cart"
	"github.com/arjunpatwa/qrmenu-backend/internal/dishes"
	"github.com/arjunpatwa/qrmenu-backend/internal/menu"
	"github.com/arjunpatwa/qrmenu-backend/internal/restaurants"
	"github.com/arjunpatwa/qrmenu-backend/internal/taxonomy"
	pkgauth "github.com/arjunpatwa/qrmenu-backend/pkg/auth"
	"github.com/arjunpatwa/qrmenu-backend/pkg/config"
	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/enums"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
	"github.com/arjunpatwa/qrmenu-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

type stubMenuService struct{}

func (stubMenuService) GetMenu(context.Context, string, dishes.ListFilter) (*menu.MenuView, error) {
	return &menu.MenuView{}, nil
}

func (stubMenuService) GetDish(context.Context, string, uuid.UUID) (*dishes.DishDTO, error) {
	return &dishes.DishDTO{}, nil
}

type stubCartService struct{}

func (stubCartService) Get(context.Context, string) (cart.Cart, error) {
	return cart.NewCart(), nil
}

func (stubCartService) AddItem(context.Context, string, cart.ItemInput, cart.SwitchConfirmer) (cart.Cart, error) {
	return cart.NewCart(), nil
}

func (stubCartService) UpdateQuantity(context.Context, string, string, int) (cart.Cart, error) {
	return cart.NewCart(), nil
}

func (stubCartService) RemoveItem(context.Context, string, string) (cart.Cart, error) {
	return cart.NewCart(), nil
}

func (stubCartService) Clear(context.Context, string) error { return nil }

func (stubCartService) Summary(context.Context, string) (cart.SummaryView, error) {
	return cart.SummaryView{}, nil
}

type stubDishesService struct{}

func (stubDishesService) Create(context.Context, uuid.UUID, dishes.CreateInput) (*dishes.DishDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) Get(context.Context, uuid.UUID, uuid.UUID) (*dishes.DishDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) List(context.Context, uuid.UUID, dishes.ListFilter) ([]dishes.DishDTO, string, error) {
	return nil, "", nil
}

func (stubDishesService) Update(context.Context, uuid.UUID, uuid.UUID, dishes.UpdateInput) (*dishes.DishDTO, error) {
	panic("unimplemented")
}

func (stubDishesService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

type stubTaxonomyService struct{}

func (stubTaxonomyService) ListCategories(context.Context, uuid.UUID) ([]taxonomy.CategoryDTO, error) {
	return nil, nil
}

func (stubTaxonomyService) CreateCategory(context.Context, uuid.UUID, string, int) (*taxonomy.CategoryDTO, error) {
	panic("unimplemented")
}

func (stubTaxonomyService) DeleteCategory(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubTaxonomyService) CreateSubcategory(context.Context, uuid.UUID, uuid.UUID, string, int) (*taxonomy.SubcategoryDTO, error) {
	panic("unimplemented")
}

func (stubTaxonomyService) DeleteSubcategory(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubTaxonomyService) ListTastes(context.Context, uuid.UUID) ([]taxonomy.TasteDTO, error) {
	return nil, nil
}

func (stubTaxonomyService) CreateTaste(context.Context, uuid.UUID, string) (*taxonomy.TasteDTO, error) {
	panic("unimplemented")
}

func (stubTaxonomyService) DeleteTaste(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

func (stubTaxonomyService) HasCategory(context.Context, uuid.UUID, string) (bool, error) {
	return true, nil
}

func (stubTaxonomyService) HasSubcategory(context.Context, uuid.UUID, string, string) (bool, error) {
	return true, nil
}

func (stubTaxonomyService) HasTaste(context.Context, uuid.UUID, string) (bool, error) {
	return true, nil
}

type stubRestaurantsService struct{}

func (stubRestaurantsService) GetBySlug(context.Context, string) (*models.Restaurant, error) {
	panic("unimplemented")
}

func (stubRestaurantsService) GetProfile(context.Context, uuid.UUID) (*restaurants.RestaurantDTO, error) {
	return &restaurants.RestaurantDTO{}, nil
}

func (stubRestaurantsService) UpdateProfile(context.Context, uuid.UUID, restaurants.UpdateInput) (*restaurants.RestaurantDTO, error) {
	panic("unimplemented")
}

func (stubRestaurantsService) List(context.Context, pagination.Params) ([]restaurants.RestaurantDTO, string, error) {
	return nil, "", nil
}

func (stubRestaurantsService) Onboard(context.Context, restaurants.OnboardInput) (*restaurants.OnboardResult, error) {
	panic("unimplemented")
}

func (stubRestaurantsService) SetBillingStatus(context.Context, uuid.UUID, enums.BillingStatus) (*restaurants.RestaurantDTO, error) {
	panic("unimplemented")
}

func (stubRestaurantsService) Impersonate(context.Context, uuid.UUID) (string, *restaurants.RestaurantDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test", Port: "0"},
		JWT:  config.JWTConfig{Secret: "secret", Issuer: "qrmenu", ExpirationMinutes: 60},
		Cart: config.CartConfig{SnapshotTTL: time.Hour, CookieName: "qm_cart"},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		prometheus.NewRegistry(),
		Services{
			Auth:        stubAuthService{},
			Menu:        stubMenuService{},
			Cart:        stubCartService{},
			Dishes:      stubDishesService{},
			Taxonomy:    stubTaxonomyService{},
			Restaurants: stubRestaurantsService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole, restaurantID *uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:       uuid.New(),
		RestaurantID: restaurantID,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicSurfaceNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, target := range []string{"/health/live", "/health/ready", "/api/public/ping", "/api/v1/cart", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", target, resp.Code)
		}
	}
}

func TestCartRoutesMintSessionCookie(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "qm_cart" {
		t.Fatalf("expected qm_cart cookie, got %+v", cookies)
	}
}

func TestOwnerGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/owner/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestOwnerGroupRequiresOwnerRoleAndScope(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	restaurantID := uuid.New()

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/owner/ping", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleSuperAdmin, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for super admin on owner surface got %d", resp.Code)
	}

	owner := httptest.NewRequest(http.MethodGet, "/api/v1/owner/ping", nil)
	owner.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleOwner, &restaurantID))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, owner)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for scoped owner got %d", resp.Code)
	}
}

func TestAdminGroupRequiresSuperAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	restaurantID := uuid.New()

	owner := httptest.NewRequest(http.MethodGet, "/api/admin/v1/ping", nil)
	owner.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleOwner, &restaurantID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, owner)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for owner on admin surface got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/ping", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleSuperAdmin, nil))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin got %d", resp.Code)
	}
}

func TestImpersonationTokenReachesOwnerSurface(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	restaurantID := uuid.New()

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:       uuid.New(),
		RestaurantID: &restaurantID,
		Role:         enums.UserRoleOwner,
		Impersonated: true,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/owner/restaurant", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected impersonation token to pass owner guards, got %d", resp.Code)
	}
}
