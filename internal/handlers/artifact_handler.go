package handlers

import (
	"net/http"

	"kulture/internal/service"
)

// ArtifactHandler serves a child's unlocked cultural artifacts
type ArtifactHandler struct {
	gameService    *service.GameService
	profileService *service.ProfileService
}

// NewArtifactHandler creates a new artifact handler
func NewArtifactHandler(gameService *service.GameService, profileService *service.ProfileService) *ArtifactHandler {
	return &ArtifactHandler{gameService: gameService, profileService: profileService}
}

// ListArtifacts handles GET /api/v1/artifacts?child_id=N
func (h *ArtifactHandler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	child, ok := childFromRequest(w, r, h.profileService)
	if !ok {
		return
	}

	artifacts, err := h.gameService.UnlockedArtifacts(child.ID)
	if err != nil {
		respondServiceError(w, err, "Error loading artifacts")
		return
	}

	respondJSON(w, http.StatusOK, artifacts)
}
