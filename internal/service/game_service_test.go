package service

import (
	"errors"
	"sync"
	"testing"

	"kulture/internal/game"
	"kulture/internal/models"
	"kulture/internal/speech"
	"kulture/internal/validation"
)

// fakeGameStore is an in-memory GameStore. It derives the passed-scenario
// set from recorded attempts and enforces grant uniqueness the way the
// real store's unique constraint does.
type fakeGameStore struct {
	mu             sync.Mutex
	attempts       []models.ScenarioAttempt
	scenarioLevels map[int64]int64
	levelScenarios map[int64][]int64
	levelArtifacts map[int64]*models.Artifact
	grants         map[[2]int64]bool
	insertErr      error
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{
		scenarioLevels: make(map[int64]int64),
		levelScenarios: make(map[int64][]int64),
		levelArtifacts: make(map[int64]*models.Artifact),
		grants:         make(map[[2]int64]bool),
	}
}

func (f *fakeGameStore) addLevel(levelID int64, scenarioIDs []int64, artifact *models.Artifact) {
	f.levelScenarios[levelID] = scenarioIDs
	for _, id := range scenarioIDs {
		f.scenarioLevels[id] = levelID
	}
	if artifact != nil {
		f.levelArtifacts[levelID] = artifact
	}
}

func (f *fakeGameStore) seedPassed(childID int64, scenarioIDs ...int64) {
	for _, id := range scenarioIDs {
		f.attempts = append(f.attempts, models.ScenarioAttempt{
			ChildID: childID, ScenarioID: id, Passed: true,
		})
	}
}

func (f *fakeGameStore) InsertAttempt(attempt *models.ScenarioAttempt) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.attempts = append(f.attempts, *attempt)
	return int64(len(f.attempts)), nil
}

func (f *fakeGameStore) PassedScenarioIDs(childID int64) (map[int64]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	passed := make(map[int64]bool)
	for _, a := range f.attempts {
		if a.ChildID == childID && a.Passed {
			passed[a.ScenarioID] = true
		}
	}
	return passed, nil
}

func (f *fakeGameStore) LevelIDForScenario(scenarioID int64) (int64, error) {
	return f.scenarioLevels[scenarioID], nil
}

func (f *fakeGameStore) LevelScenarioIDs(levelID int64) ([]int64, error) {
	return f.levelScenarios[levelID], nil
}

func (f *fakeGameStore) ArtifactForLevel(levelID int64) (*models.Artifact, error) {
	return f.levelArtifacts[levelID], nil
}

func (f *fakeGameStore) InsertArtifactGrant(childID, artifactID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{childID, artifactID}
	if f.grants[key] {
		return false, nil
	}
	f.grants[key] = true
	return true, nil
}

func (f *fakeGameStore) ArtifactsForChild(childID int64) ([]models.Artifact, error) {
	return nil, nil
}

func (f *fakeGameStore) InsertCardCompletion(childID, cardID int64) (*models.CardCompletion, error) {
	return &models.CardCompletion{ID: 1, ChildID: childID, CardID: cardID}, nil
}

func (f *fakeGameStore) grantCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.grants)
}

// fakeChildStore tracks counter updates
type fakeChildStore struct {
	mu         sync.Mutex
	scoreTotal int
	levelTotal int
	updateErr  error
}

func (f *fakeChildStore) UpdateChildCounters(childID int64, scoreDelta, levelDelta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.scoreTotal += scoreDelta
	f.levelTotal += levelDelta
	return nil
}

// fakeNodeStore serves dialogue nodes from a map
type fakeNodeStore struct {
	nodes map[int64]*models.DialogueNode
}

func (f *fakeNodeStore) NodeByID(nodeID int64) (*models.DialogueNode, error) {
	return f.nodes[nodeID], nil
}

func newTestGameService(store *fakeGameStore, children *fakeChildStore, nodes *fakeNodeStore, passRatio float64) *GameService {
	if nodes == nil {
		nodes = &fakeNodeStore{nodes: map[int64]*models.DialogueNode{}}
	}
	grader := game.NewGrader(game.NewLevenshteinScorer())
	return NewGameService(store, children, nodes, grader, speech.NewStubTranscriber(), passRatio)
}

func TestSubmitAttemptPassThreshold(t *testing.T) {
	tests := []struct {
		name        string
		passRatio   float64
		scoreEarned int
		maxScore    int
		wantPassed  bool
	}{
		{name: "just below 0.6 threshold", passRatio: 0.6, scoreEarned: 59, maxScore: 100, wantPassed: false},
		{name: "at 0.6 threshold", passRatio: 0.6, scoreEarned: 60, maxScore: 100, wantPassed: true},
		{name: "full score", passRatio: 0.6, scoreEarned: 100, maxScore: 100, wantPassed: true},
		{name: "zero score", passRatio: 0.6, scoreEarned: 0, maxScore: 100, wantPassed: false},
		{name: "just below 0.7 threshold", passRatio: 0.7, scoreEarned: 69, maxScore: 100, wantPassed: false},
		{name: "at 0.7 threshold", passRatio: 0.7, scoreEarned: 70, maxScore: 100, wantPassed: true},
		{name: "two of three questions at 0.6", passRatio: 0.6, scoreEarned: 2, maxScore: 3, wantPassed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeGameStore()
			store.addLevel(1, []int64{10, 11}, nil)
			svc := newTestGameService(store, &fakeChildStore{}, nil, tt.passRatio)

			result, err := svc.SubmitAttempt(1, 10, tt.scoreEarned, tt.maxScore, 0)
			if err != nil {
				t.Fatalf("SubmitAttempt() error = %v", err)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
			if result.AttemptID == 0 {
				t.Error("AttemptID should be set")
			}
		})
	}
}

func TestSubmitAttemptValidation(t *testing.T) {
	store := newFakeGameStore()
	svc := newTestGameService(store, &fakeChildStore{}, nil, 0.6)

	var vErr validation.ValidationError
	if _, err := svc.SubmitAttempt(1, 10, 5, 0, 0); !errors.As(err, &vErr) {
		t.Errorf("SubmitAttempt() with zero max score: error = %v, want ValidationError", err)
	}
	if _, err := svc.SubmitAttempt(1, 10, -1, 10, 0); !errors.As(err, &vErr) {
		t.Errorf("SubmitAttempt() with negative score: error = %v, want ValidationError", err)
	}
}

func TestSubmitAttemptCompletesLevel(t *testing.T) {
	store := newFakeGameStore()
	artifact := &models.Artifact{ID: 100, LevelID: 1, Name: "Evil Eye Bead"}
	store.addLevel(1, []int64{10, 11, 12}, artifact)
	store.seedPassed(1, 10, 11)
	children := &fakeChildStore{}
	svc := newTestGameService(store, children, nil, 0.6)

	result, err := svc.SubmitAttempt(1, 12, 90, 100, 3)
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	if !result.Passed {
		t.Error("attempt should pass")
	}
	if !result.LevelCompleted {
		t.Error("level should be completed")
	}
	if result.UnlockedArtifact == nil || result.UnlockedArtifact.ID != artifact.ID {
		t.Errorf("UnlockedArtifact = %v, want artifact %d", result.UnlockedArtifact, artifact.ID)
	}
	if store.grantCount() != 1 {
		t.Errorf("grant count = %d, want 1", store.grantCount())
	}
	if children.levelTotal != 1 {
		t.Errorf("level counter delta = %d, want 1", children.levelTotal)
	}
	if children.scoreTotal != 90 {
		t.Errorf("respect delta = %d, want 90", children.scoreTotal)
	}
}

func TestSubmitAttemptPartialLevel(t *testing.T) {
	store := newFakeGameStore()
	store.addLevel(1, []int64{10, 11, 12}, &models.Artifact{ID: 100, LevelID: 1})
	store.seedPassed(1, 10)
	children := &fakeChildStore{}
	svc := newTestGameService(store, children, nil, 0.6)

	result, err := svc.SubmitAttempt(1, 11, 80, 100, 2)
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	if result.LevelCompleted {
		t.Error("level should not be completed with a scenario still unpassed")
	}
	if result.UnlockedArtifact != nil {
		t.Error("no artifact should unlock before the level completes")
	}
	if children.levelTotal != 0 {
		t.Errorf("level counter delta = %d, want 0", children.levelTotal)
	}
	if children.scoreTotal != 80 {
		t.Errorf("respect delta = %d, want 80 (accrues on every passing attempt)", children.scoreTotal)
	}
}

func TestSubmitAttemptFailedAttemptNoProgression(t *testing.T) {
	store := newFakeGameStore()
	store.addLevel(1, []int64{10}, &models.Artifact{ID: 100, LevelID: 1})
	children := &fakeChildStore{}
	svc := newTestGameService(store, children, nil, 0.6)

	result, err := svc.SubmitAttempt(1, 10, 10, 100, 0)
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	if result.Passed {
		t.Error("attempt should fail")
	}
	if children.scoreTotal != 0 || children.levelTotal != 0 {
		t.Errorf("counters = (%d,%d), want (0,0) after failed attempt", children.scoreTotal, children.levelTotal)
	}
	if store.grantCount() != 0 {
		t.Errorf("grant count = %d, want 0", store.grantCount())
	}
}

func TestSubmitAttemptUnlockIdempotent(t *testing.T) {
	store := newFakeGameStore()
	store.addLevel(1, []int64{10}, &models.Artifact{ID: 100, LevelID: 1})
	children := &fakeChildStore{}
	svc := newTestGameService(store, children, nil, 0.6)

	first, err := svc.SubmitAttempt(1, 10, 100, 100, 3)
	if err != nil {
		t.Fatalf("first SubmitAttempt() error = %v", err)
	}
	if first.UnlockedArtifact == nil {
		t.Fatal("first completion should unlock the artifact")
	}

	// Replaying the same passing attempt re-detects completion but must
	// not grant again or double-bump the level counter
	second, err := svc.SubmitAttempt(1, 10, 100, 100, 3)
	if err != nil {
		t.Fatalf("second SubmitAttempt() error = %v", err)
	}

	if !second.LevelCompleted {
		t.Error("replay should still report the level as completed")
	}
	if second.UnlockedArtifact != nil {
		t.Error("replay should not unlock the artifact again")
	}
	if store.grantCount() != 1 {
		t.Errorf("grant count = %d, want 1", store.grantCount())
	}
	if children.levelTotal != 1 {
		t.Errorf("level counter delta = %d, want 1", children.levelTotal)
	}
	if children.scoreTotal != 200 {
		t.Errorf("respect delta = %d, want 200 (both passing attempts accrue)", children.scoreTotal)
	}
}

func TestSubmitAttemptConcurrentFinalScenario(t *testing.T) {
	store := newFakeGameStore()
	store.addLevel(1, []int64{10, 11}, &models.Artifact{ID: 100, LevelID: 1})
	store.seedPassed(1, 10)
	children := &fakeChildStore{}
	svc := newTestGameService(store, children, nil, 0.6)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.SubmitAttempt(1, 11, 100, 100, 3); err != nil {
				t.Errorf("SubmitAttempt() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if store.grantCount() != 1 {
		t.Errorf("grant count = %d, want exactly 1", store.grantCount())
	}
	if children.levelTotal != 1 {
		t.Errorf("level counter delta = %d, want exactly 1", children.levelTotal)
	}
}

func TestSubmitAttemptLevelWithoutArtifact(t *testing.T) {
	store := newFakeGameStore()
	store.addLevel(1, []int64{10}, nil)
	children := &fakeChildStore{}
	svc := newTestGameService(store, children, nil, 0.6)

	result, err := svc.SubmitAttempt(1, 10, 100, 100, 3)
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	if !result.LevelCompleted {
		t.Error("level should complete even without a configured artifact")
	}
	if result.UnlockedArtifact != nil {
		t.Error("no artifact to unlock")
	}
	if children.levelTotal != 0 {
		t.Errorf("level counter delta = %d, want 0 without a grant", children.levelTotal)
	}
}

func TestSubmitAttemptInsertFailureAbortsEverything(t *testing.T) {
	store := newFakeGameStore()
	store.addLevel(1, []int64{10}, &models.Artifact{ID: 100, LevelID: 1})
	store.insertErr = errors.New("connection reset")
	children := &fakeChildStore{}
	svc := newTestGameService(store, children, nil, 0.6)

	if _, err := svc.SubmitAttempt(1, 10, 100, 100, 3); err == nil {
		t.Fatal("SubmitAttempt() should fail when the attempt insert fails")
	}

	if children.scoreTotal != 0 || children.levelTotal != 0 {
		t.Error("no counters should change when the primary write fails")
	}
	if store.grantCount() != 0 {
		t.Error("no grant should be attempted when the primary write fails")
	}
}

func TestSubmitAttemptCounterFailureIsSwallowed(t *testing.T) {
	store := newFakeGameStore()
	store.addLevel(1, []int64{10}, nil)
	children := &fakeChildStore{updateErr: errors.New("connection reset")}
	svc := newTestGameService(store, children, nil, 0.6)

	result, err := svc.SubmitAttempt(1, 10, 100, 100, 3)
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v; counter failures must not fail the submission", err)
	}
	if !result.Passed {
		t.Error("attempt should still report as passed")
	}
}

func TestGradeNodeAnswer(t *testing.T) {
	nodes := &fakeNodeStore{nodes: map[int64]*models.DialogueNode{
		1: {ID: 1, ExpectedResponse: "merhaba", PointsMax: 10, SpeakerType: "user"},
		2: {ID: 2, ExpectedResponse: "", PointsMax: 0, SpeakerType: "narrator"},
	}}
	svc := newTestGameService(newFakeGameStore(), &fakeChildStore{}, nodes, 0.6)

	t.Run("matching text submission", func(t *testing.T) {
		result, err := svc.GradeNodeAnswer(1, nil, "Merhaba")
		if err != nil {
			t.Fatalf("GradeNodeAnswer() error = %v", err)
		}
		if !result.Correct || result.Score != 10 {
			t.Errorf("got correct=%v score=%v, want full credit", result.Correct, result.Score)
		}
		if result.Transcription != "Merhaba" {
			t.Errorf("Transcription = %q, want %q", result.Transcription, "Merhaba")
		}
	})

	t.Run("narrator node needs no answer", func(t *testing.T) {
		result, err := svc.GradeNodeAnswer(2, nil, "")
		if err != nil {
			t.Fatalf("GradeNodeAnswer() error = %v", err)
		}
		if !result.Correct || result.Feedback != game.FeedbackContinue {
			t.Errorf("got correct=%v feedback=%v, want continue", result.Correct, result.Feedback)
		}
	})

	t.Run("missing submission fails a scored node", func(t *testing.T) {
		result, err := svc.GradeNodeAnswer(1, nil, "")
		if err != nil {
			t.Fatalf("GradeNodeAnswer() error = %v", err)
		}
		if result.Correct || result.Score != 0 {
			t.Errorf("got correct=%v score=%v, want a failed grade", result.Correct, result.Score)
		}
	})

	t.Run("unknown node", func(t *testing.T) {
		if _, err := svc.GradeNodeAnswer(99, nil, "hi"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GradeNodeAnswer() error = %v, want %v", err, ErrNotFound)
		}
	})
}
