package service

import (
	"fmt"
	"log"

	"kulture/internal/game"
	"kulture/internal/models"
	"kulture/internal/speech"
	"kulture/internal/validation"
)

// GameStore is the persistence surface the progression engine needs
type GameStore interface {
	InsertAttempt(attempt *models.ScenarioAttempt) (int64, error)
	PassedScenarioIDs(childID int64) (map[int64]bool, error)
	LevelIDForScenario(scenarioID int64) (int64, error)
	LevelScenarioIDs(levelID int64) ([]int64, error)
	ArtifactForLevel(levelID int64) (*models.Artifact, error)
	InsertArtifactGrant(childID, artifactID int64) (bool, error)
	ArtifactsForChild(childID int64) ([]models.Artifact, error)
	InsertCardCompletion(childID, cardID int64) (*models.CardCompletion, error)
}

// ChildCounterStore updates a child's cumulative counters
type ChildCounterStore interface {
	UpdateChildCounters(childID int64, scoreDelta, levelDelta int) error
}

// NodeStore loads dialogue nodes for grading
type NodeStore interface {
	NodeByID(nodeID int64) (*models.DialogueNode, error)
}

// GameService handles attempt grading, recording and level progression
type GameService struct {
	store       GameStore
	children    ChildCounterStore
	nodes       NodeStore
	grader      *game.Grader
	transcriber speech.Transcriber
	passRatio   float64
}

// NewGameService creates a new game service
func NewGameService(store GameStore, children ChildCounterStore, nodes NodeStore, grader *game.Grader, transcriber speech.Transcriber, passRatio float64) *GameService {
	return &GameService{
		store:       store,
		children:    children,
		nodes:       nodes,
		grader:      grader,
		transcriber: transcriber,
		passRatio:   passRatio,
	}
}

// AnswerResult is the verdict for a single node submission
type AnswerResult struct {
	game.GradeResult
	Transcription string `json:"transcription,omitempty"`
}

// GradeNodeAnswer grades one dialogue node submission. Audio submissions
// go through the transcriber; a missing submission grades as empty text.
func (s *GameService) GradeNodeAnswer(nodeID int64, audio []byte, text string) (*AnswerResult, error) {
	node, err := s.nodes.NodeByID(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialogue node: %w", err)
	}
	if node == nil {
		return nil, ErrNotFound
	}

	submitted, err := s.transcriber.Transcribe(audio, text)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe submission: %w", err)
	}

	result := s.grader.Grade(submitted, node.ExpectedResponse, node.PointsMax)
	return &AnswerResult{GradeResult: result, Transcription: submitted}, nil
}

// AttemptResult reports the outcome of a recorded scenario attempt
type AttemptResult struct {
	AttemptID        int64            `json:"saved_id"`
	Passed           bool             `json:"passed"`
	LevelCompleted   bool             `json:"level_completed"`
	UnlockedArtifact *models.Artifact `json:"unlocked_artifact,omitempty"`
}

// SubmitAttempt records a scenario attempt and, when it passes, applies
// its progression consequences. The attempt insert is the primary write:
// if it fails, nothing is recorded and the error propagates. Progression
// failures after the insert are logged and swallowed, because un-recording
// the attempt would be worse than temporarily stale counters.
func (s *GameService) SubmitAttempt(childID, scenarioID int64, scoreEarned, maxScore, starsEarned int) (*AttemptResult, error) {
	if maxScore <= 0 {
		return nil, validation.ValidationError{Field: "max_score", Message: "max_score must be positive"}
	}
	if scoreEarned < 0 {
		return nil, validation.ValidationError{Field: "score_earned", Message: "score_earned cannot be negative"}
	}

	passed := float64(scoreEarned) >= float64(maxScore)*s.passRatio

	attemptID, err := s.store.InsertAttempt(&models.ScenarioAttempt{
		ChildID:     childID,
		ScenarioID:  scenarioID,
		ScoreEarned: scoreEarned,
		MaxScore:    maxScore,
		StarsEarned: starsEarned,
		Passed:      passed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	result := &AttemptResult{AttemptID: attemptID, Passed: passed}
	if passed {
		result.LevelCompleted, result.UnlockedArtifact = s.applyProgression(childID, scenarioID, scoreEarned)
	}

	return result, nil
}

// applyProgression re-evaluates level completion after a passing attempt,
// grants the level's artifact at most once, and accumulates the child's
// counters. Respect accrues on every passing attempt; the level counter
// bumps only when the artifact grant actually inserted, which keeps the
// whole step idempotent on replays and safe under concurrent submissions.
func (s *GameService) applyProgression(childID, scenarioID int64, scoreEarned int) (bool, *models.Artifact) {
	completed := false
	levelDelta := 0
	var unlocked *models.Artifact

	levelID, err := s.store.LevelIDForScenario(scenarioID)
	if err != nil {
		log.Printf("Error resolving level for scenario %d: %v", scenarioID, err)
	} else if levelID != 0 {
		completed, unlocked, levelDelta = s.evaluateCompletion(childID, levelID)
	}

	if err := s.children.UpdateChildCounters(childID, scoreEarned, levelDelta); err != nil {
		// The attempt is already durably recorded; report and move on
		log.Printf("Error updating counters for child %d (attempt stands, stats may be stale): %v", childID, err)
	}

	return completed, unlocked
}

// evaluateCompletion checks whether the level's full scenario set is now
// passed and, if so, grants its artifact
func (s *GameService) evaluateCompletion(childID, levelID int64) (bool, *models.Artifact, int) {
	scenarioIDs, err := s.store.LevelScenarioIDs(levelID)
	if err != nil {
		log.Printf("Error loading scenarios for level %d: %v", levelID, err)
		return false, nil, 0
	}

	passed, err := s.store.PassedScenarioIDs(childID)
	if err != nil {
		log.Printf("Error loading passed scenarios for child %d: %v", childID, err)
		return false, nil, 0
	}

	if !game.LevelCompleted(scenarioIDs, passed) {
		return false, nil, 0
	}

	artifact, err := s.store.ArtifactForLevel(levelID)
	if err != nil {
		log.Printf("Error loading artifact for level %d: %v", levelID, err)
		return true, nil, 0
	}
	if artifact == nil {
		return true, nil, 0
	}

	inserted, err := s.store.InsertArtifactGrant(childID, artifact.ID)
	if err != nil {
		log.Printf("Error granting artifact %d to child %d: %v", artifact.ID, childID, err)
		return true, nil, 0
	}
	if !inserted {
		// Level was already completed earlier; nothing new to grant
		return true, nil, 0
	}

	return true, artifact, 1
}

// UnlockedArtifacts lists all artifacts a child has unlocked
func (s *GameService) UnlockedArtifacts(childID int64) ([]models.Artifact, error) {
	return s.store.ArtifactsForChild(childID)
}

// CompleteCard records an action-card completion for a child
func (s *GameService) CompleteCard(childID, cardID int64) (*models.CardCompletion, error) {
	completion, err := s.store.InsertCardCompletion(childID, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to save card completion: %w", err)
	}
	return completion, nil
}
