package handlers

import (
	"net/http"
	"strconv"

	"kulture/internal/service"
)

// ContentHandler serves the learning content tree: modules with per-child
// level statuses, level detail and scenario play data
type ContentHandler struct {
	contentService *service.ContentService
	profileService *service.ProfileService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *service.ContentService, profileService *service.ProfileService) *ContentHandler {
	return &ContentHandler{contentService: contentService, profileService: profileService}
}

// ListModules handles GET /api/v1/modules?child_id=N
func (h *ContentHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	child, ok := childFromRequest(w, r, h.profileService)
	if !ok {
		return
	}

	modules, err := h.contentService.ModulesForChild(child)
	if err != nil {
		respondServiceError(w, err, "Error loading modules")
		return
	}

	respondJSON(w, http.StatusOK, modules)
}

// ListCards handles GET /api/v1/cards?child_id=N
func (h *ContentHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	child, ok := childFromRequest(w, r, h.profileService)
	if !ok {
		return
	}

	cards, err := h.contentService.ActionCardsForChild(child)
	if err != nil {
		respondServiceError(w, err, "Error loading action cards")
		return
	}

	respondJSON(w, http.StatusOK, cards)
}

// GetLevel handles GET /api/v1/levels/{id}
func (h *ContentHandler) GetLevel(w http.ResponseWriter, r *http.Request) {
	levelID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid level ID", "", nil)
		return
	}

	level, err := h.contentService.LevelDetail(levelID)
	if err != nil {
		respondServiceError(w, err, "Error loading level")
		return
	}

	respondJSON(w, http.StatusOK, level)
}

// GetScenario handles GET /api/v1/scenarios/{id}
func (h *ContentHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	scenarioID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid scenario ID", "", nil)
		return
	}

	scenario, err := h.contentService.ScenarioPlayData(scenarioID)
	if err != nil {
		respondServiceError(w, err, "Error loading scenario")
		return
	}

	respondJSON(w, http.StatusOK, scenario)
}
