package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
)

// chiRouteRequest attaches a chi route context so chi.URLParam resolves
// without spinning up a full router.
func chiRouteRequest(t *testing.T, r *http.Request, pairs ...string) *http.Request {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("url params must come in key/value pairs")
	}
	rctx := chi.NewRouteContext()
	for i := 0; i < len(pairs); i += 2 {
		rctx.URLParams.Add(pairs[i], pairs[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
