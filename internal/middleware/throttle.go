package middleware

import "net/http"

// Throttle caps the number of in-flight requests. Excess requests are
// rejected with 503 instead of queueing behind a saturated database pool.
func Throttle(limit int) func(http.Handler) http.Handler {
	slots := make(chan struct{}, limit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
				next.ServeHTTP(w, r)
			default:
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"error":"server is busy, try again later"}`))
			}
		})
	}
}
