package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/auth"
	"github.com/rahayucraft/studio-management/pkg/logger"
)

// Authenticator validates the bearer token and injects the request actor
// into the context. Downstream services read the actor for audit entries.
func Authenticator(authService *auth.Service, lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				lg.Warn("missing bearer token", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			claims, err := authService.ValidateAccessToken(token)
			if err != nil {
				lg.Warn("token validation failed", "error", err, "path", r.URL.Path)
				unauthorized(w)
				return
			}

			actor := &internal.Actor{
				UserID: claims.UserID,
				Name:   claims.Name,
				Email:  claims.Email,
				Role:   claims.Role,
			}

			ctx := internal.ContextWithActor(r.Context(), actor)
			ctx = logger.With(ctx, "user_id", actor.UserID, "role", actor.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"type":"UNAUTHORIZED","code":"INVALID_TOKEN","message":"invalid or missing token"}}`))
}
