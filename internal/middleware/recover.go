package middleware

import (
	"log/slog"
	"net/http"
)

// Recover turns handler panics into a 500 JSON response instead of dropping
// the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec != nil {
				slog.Error("handler panic", "panic", rec, "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"message":"internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
