package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"kulture/internal/service"
)

// Audio clips come from short spoken answers; anything bigger is rejected
const maxAudioUploadBytes = 10 << 20

// GameHandler handles answer grading, attempt submission and action cards
type GameHandler struct {
	gameService    *service.GameService
	profileService *service.ProfileService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService, profileService *service.ProfileService) *GameHandler {
	return &GameHandler{gameService: gameService, profileService: profileService}
}

// GradeAnswer handles POST /api/v1/game/answers. The body is multipart:
// a node_id field, an optional text field and an optional audio file.
func (h *GameHandler) GradeAnswer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart body", "", nil)
		return
	}

	nodeID, err := strconv.ParseInt(r.FormValue("node_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing or invalid node_id", "", nil)
		return
	}

	var audio []byte
	if file, _, err := r.FormFile("audio"); err == nil {
		defer file.Close()
		audio, err = io.ReadAll(io.LimitReader(file, maxAudioUploadBytes))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Failed to read audio upload", "", err)
			return
		}
	}

	result, err := h.gameService.GradeNodeAnswer(nodeID, audio, r.FormValue("text"))
	if err != nil {
		respondServiceError(w, err, "Error grading answer")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// SubmitAttempt handles POST /api/v1/game/attempts?child_id=N
func (h *GameHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	child, ok := childFromRequest(w, r, h.profileService)
	if !ok {
		return
	}

	var req struct {
		ScenarioID  int64 `json:"scenario_id"`
		ScoreEarned int   `json:"score_earned"`
		MaxScore    int   `json:"max_score"`
		StarsEarned int   `json:"stars_earned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	result, err := h.gameService.SubmitAttempt(child.ID, req.ScenarioID, req.ScoreEarned, req.MaxScore, req.StarsEarned)
	if err != nil {
		respondServiceError(w, err, "Error recording attempt")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// CompleteCard handles POST /api/v1/cards/{id}/complete?child_id=N
func (h *GameHandler) CompleteCard(w http.ResponseWriter, r *http.Request) {
	child, ok := childFromRequest(w, r, h.profileService)
	if !ok {
		return
	}

	cardID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card ID", "", nil)
		return
	}

	completion, err := h.gameService.CompleteCard(child.ID, cardID)
	if err != nil {
		respondServiceError(w, err, "Error recording card completion")
		return
	}

	respondJSON(w, http.StatusCreated, completion)
}
