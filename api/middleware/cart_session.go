package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/arjunpatwa/qrmenu-backend/pkg/config"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
)

// CartSession resolves the diner's anonymous cart session from a cookie,
// minting one on first contact. The cookie only names the session; the cart
// itself lives in Redis and expires on its own schedule.
func CartSession(cfg config.CartConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithField(ctx, "cart_session", sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
