package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"kulture/internal/models"
	"kulture/internal/service"
)

// ProfileHandler handles child profile management
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CreateChild handles POST /api/v1/children
func (h *ProfileHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	parent := GetParentFromContext(r.Context())

	var req struct {
		DisplayName string `json:"display_name"`
		Age         int    `json:"age"`
		Language    string `json:"language_learning"`
		Gender      string `json:"gender"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	child, err := h.profileService.CreateChild(parent.ID, req.DisplayName, req.Age, req.Language, req.Gender)
	if err != nil {
		respondServiceError(w, err, "Error creating child profile")
		return
	}

	respondJSON(w, http.StatusCreated, child)
}

// ListChildren handles GET /api/v1/children
func (h *ProfileHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	parent := GetParentFromContext(r.Context())

	children, err := h.profileService.ListChildren(parent.ID)
	if err != nil {
		respondServiceError(w, err, "Error listing children")
		return
	}

	respondJSON(w, http.StatusOK, children)
}

// GetChild handles GET /api/v1/children/{id}
func (h *ProfileHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	parent := GetParentFromContext(r.Context())

	childID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", "", nil)
		return
	}

	child, err := h.profileService.ChildForParent(childID, parent.ID)
	if err != nil {
		respondServiceError(w, err, "Error loading child profile")
		return
	}

	respondJSON(w, http.StatusOK, child)
}

// childFromRequest resolves the child_id query parameter to a child owned
// by the authenticated parent. Shared by the content, game and artifact
// handlers, which all act on behalf of one child.
func childFromRequest(w http.ResponseWriter, r *http.Request, profiles *service.ProfileService) (*models.Child, bool) {
	parent := GetParentFromContext(r.Context())

	childID, err := strconv.ParseInt(r.URL.Query().Get("child_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing or invalid child_id", "", nil)
		return nil, false
	}

	child, err := profiles.ChildForParent(childID, parent.ID)
	if err != nil {
		respondServiceError(w, err, "Error verifying child ownership")
		return nil, false
	}

	return child, true
}
