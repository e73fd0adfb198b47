package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
	"github.com/rahayucraft/studio-management/internal/store"
)

// RequireCapability gates a route on an effective permission. The check
// resolves against the live role mapping, so a cascade that revoked a
// capability takes effect on the next request. Admin passes implicitly.
func RequireCapability(st *store.Store, capability string, lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := internal.ActorFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			var allowed bool
			st.View(func(s *store.State) {
				u := s.FindUser(actor.UserID)
				if u == nil {
					return
				}
				perms := s.EffectivePermissions(u)
				allowed = perms.Can(capability)
			})

			if !allowed {
				lg.Warn("access denied: missing capability",
					"user_id", actor.UserID,
					"role", actor.Role,
					"capability", capability,
					"path", r.URL.Path)
				forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a route on the actor's role alone, for routes that
// are role-scoped rather than capability-scoped.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := internal.ActorFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if actor.Role == user.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			forbidden(w)
		})
	}
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":{"type":"FORBIDDEN","code":"INSUFFICIENT_PERMISSIONS","message":"insufficient permissions"}}`))
}
