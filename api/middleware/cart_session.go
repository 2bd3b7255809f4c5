package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
)

const (
	cartSessionHeader = "X-Cart-Session"
	cartSessionCookie = "lumina_cart"
)

// CartSession resolves the visitor's cart session identifier. Clients may
// send it as a header or cookie; first-time visitors get a fresh one. The
// identifier is echoed back on both channels so either kind of client can
// persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(cartSessionHeader)
			if sessionID == "" {
				if cookie, err := r.Cookie(cartSessionCookie); err == nil {
					sessionID = cookie.Value
				}
			}
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)
			http.SetCookie(w, &http.Cookie{
				Name:     cartSessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int((30 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
