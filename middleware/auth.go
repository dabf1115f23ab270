package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// Key type for context
type contextKey string

const PhoneContextKey = contextKey("phone")

// RequireAuth checks the X-Phone header and attaches the caller's phone
// identifier to the request context. The header is an opaque identifier, not a
// credential; real session handling is outside this system.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		phone := r.Header.Get("X-Phone")
		if phone == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not authenticated"})
			return
		}
		ctx := context.WithValue(r.Context(), PhoneContextKey, phone)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Phone extracts the authenticated phone identifier from the request context.
func Phone(r *http.Request) string {
	phone, _ := r.Context().Value(PhoneContextKey).(string)
	return phone
}
