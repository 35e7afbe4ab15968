package middleware

import (
	"context"
	"net/http"

	"medtrack/reminder-service/pkg/helpers"
)

const requestIDKey contextKey = "request_id"

// RequestIDHeader is the response header carrying the request identifier
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a UUID, honoring one supplied by an
// upstream proxy.
func RequestID() func(http.Handler) http.Handler {
	ids := helpers.NewIDGenerator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = ids.GenerateUUID()
			}
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request identifier, or empty
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
