package service

import (
	"fmt"

	"kulture/internal/game"
	"kulture/internal/models"
	"kulture/internal/repository"
)

// ContentService handles the content tree read paths. Level statuses are
// derived per child on every read; nothing here writes state.
type ContentService struct {
	contentRepo *repository.ContentRepository
	gameRepo    *repository.GameRepository
}

// NewContentService creates a new content service
func NewContentService(contentRepo *repository.ContentRepository, gameRepo *repository.GameRepository) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		gameRepo:    gameRepo,
	}
}

// ModulesForChild retrieves all modules for the child's language with
// each level's lock status computed from the child's passed scenarios
func (s *ContentService) ModulesForChild(child *models.Child) ([]models.Module, error) {
	modules, err := s.contentRepo.ModulesByLanguage(child.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}

	passed, err := s.gameRepo.PassedScenarioIDs(child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load passed scenarios: %w", err)
	}

	for mi := range modules {
		levels := modules[mi].Levels

		levelScenarios := make([]game.LevelScenarios, len(levels))
		for li := range levels {
			ids, err := s.contentRepo.LevelScenarioIDs(levels[li].ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load scenarios for level %d: %w", levels[li].ID, err)
			}
			levelScenarios[li] = game.LevelScenarios{LevelID: levels[li].ID, ScenarioIDs: ids}
		}

		statuses := game.ComputeStatuses(levelScenarios, passed)
		for li := range levels {
			levels[li].Status = string(statuses[li])
		}
	}

	return modules, nil
}

// LevelDetail retrieves a level with its scenarios
func (s *ContentService) LevelDetail(levelID int64) (*models.Level, error) {
	level, err := s.contentRepo.LevelByID(levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}
	if level == nil {
		return nil, ErrNotFound
	}

	scenarios, err := s.contentRepo.ScenariosByLevel(levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}
	level.Scenarios = scenarios

	return level, nil
}

// ActionCardsForChild retrieves the action card catalog for the child's
// target language
func (s *ContentService) ActionCardsForChild(child *models.Child) ([]models.ActionCard, error) {
	cards, err := s.contentRepo.ActionCardsByLanguage(child.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to load action cards: %w", err)
	}
	return cards, nil
}

// ScenarioPlayData retrieves the full dialogue script for a scenario
func (s *ContentService) ScenarioPlayData(scenarioID int64) (*models.ScenarioDetail, error) {
	scenario, err := s.contentRepo.ScenarioByID(scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	if scenario == nil {
		return nil, ErrNotFound
	}

	nodes, err := s.contentRepo.NodesByScenario(scenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialogue nodes: %w", err)
	}

	return &models.ScenarioDetail{Scenario: *scenario, Nodes: nodes}, nil
}
