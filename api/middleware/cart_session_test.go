package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/pkg/config"
)

func cartConfig() config.CartConfig {
	return config.CartConfig{CookieName: "qm_cart"}
}

func TestCartSessionMintsCookieOnFirstVisit(t *testing.T) {
	var seen string
	handler := CartSession(cartConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" {
		t.Fatal("expected a session id in context")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("session id must be a UUID, got %q", seen)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "qm_cart" || cookies[0].Value != seen {
		t.Fatalf("expected qm_cart cookie carrying %q, got %+v", seen, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("cart cookie must be http-only")
	}
}

func TestCartSessionReusesExistingCookie(t *testing.T) {
	existing := uuid.NewString()
	var seen string
	handler := CartSession(cartConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "qm_cart", Value: existing})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != existing {
		t.Fatalf("expected session %q reused, got %q", existing, seen)
	}
	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("no new cookie should be set for a returning session")
	}
}

func TestCartSessionReplacesTamperedCookie(t *testing.T) {
	var seen string
	handler := CartSession(cartConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "qm_cart", Value: "../../etc/passwd"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("tampered cookie must be replaced with a fresh UUID, got %q", seen)
	}
	if len(resp.Result().Cookies()) != 1 {
		t.Fatal("expected a replacement cookie")
	}
}
