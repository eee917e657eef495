package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kulture/internal/service"
	"kulture/internal/validation"
)

// errorResponse is the JSON error envelope for every API error
type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Detail: userMsg})
}

// respondServiceError maps service-layer errors to HTTP statuses.
// Unrecognized errors become opaque 500s so internals never leak.
func respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	var vErr validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found", "", nil)
	case errors.Is(err, service.ErrAccessDenied):
		respondWithError(w, http.StatusForbidden, "Access denied", "", nil)
	case errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, "An account with this email already exists", "", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
	case errors.Is(err, service.ErrGoogleOnlyAccount):
		respondWithError(w, http.StatusUnauthorized, "This account uses Google sign-in", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logMsg, err)
	}
}
