// Package controllers implements the HTTP handlers. Each controller struct
// owns the collaborators it needs and is wired up in main.
package controllers

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": message})
}

// randomCode returns a 6-digit verification code.
func randomCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
