package shared

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// IDParam reads a numeric route parameter. ok is false for anything that is
// not a positive integer.
func IDParam(r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// IntQuery reads an optional integer query parameter. present reports whether
// the parameter was supplied at all; ok reports whether it parsed.
func IntQuery(r *http.Request, name string) (value int, present, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, false
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, false
	}
	return parsed, true, true
}
