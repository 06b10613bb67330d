package middleware

import "net/http"

// BodyLimit caps request bodies on the mutating verbs so a misbehaving
// client cannot stream unbounded JSON into a handler. Reads past the cap
// fail with http.MaxBytesError; reads and deletes pass through untouched.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 {
				switch r.Method {
				case http.MethodPost, http.MethodPut, http.MethodPatch:
					r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
