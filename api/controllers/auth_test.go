package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/internal/auth"
	"github.com/arjunpatwa/qrmenu-backend/internal/users"
	pkgerrors "github.com/arjunpatwa/qrmenu-backend/pkg/errors"
)

type stubAuthService struct {
	resp    *auth.LoginResponse
	err     error
	gotReq  auth.LoginRequest
	invoked bool
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.invoked = true
	s.gotReq = req
	return s.resp, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	restaurantID := uuid.New()
	svc := &stubAuthService{resp: &auth.LoginResponse{
		AccessToken:  "access-token",
		User:         &users.UserDTO{ID: uuid.New(), Email: "owner@udupi.example"},
		RestaurantID: &restaurantID,
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"owner@udupi.example","password":"secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotReq.ClientIP != "203.0.113.9" {
		t.Fatalf("expected forwarded client ip, got %q", svc.gotReq.ClientIP)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	svc := &stubAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.invoked {
		t.Fatal("service must not run on invalid payloads")
	}
}

func TestAuthLoginPassesThroughUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"owner@udupi.example","password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthLogin(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
