package middleware

import (
	"net/http"
)

// LimitBody caps request bodies at n bytes. Registration payloads carry the
// payment screenshot inline, so n has to leave room for an image.
func LimitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
