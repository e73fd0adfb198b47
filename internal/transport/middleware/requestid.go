package middleware

import (
	"net/http"

	"github.com/rahayucraft/studio-management/pkg/logger"

	"github.com/google/uuid"
)

// RequestID tags every request with a trace id, honoring one supplied
// by the caller, and echoes it back on the response so clients can
// correlate their logs with ours.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Trace-ID")
		if id == "" {
			id = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", id)
		w.Header().Set("X-Trace-ID", id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
