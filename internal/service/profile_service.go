package service

import (
	"fmt"
	"log"

	"kulture/internal/models"
	"kulture/internal/repository"
	"kulture/internal/validation"
)

// ProfileService handles child profile management
type ProfileService struct {
	childRepo        *repository.ChildRepository
	defaultAvatarURL string
}

// NewProfileService creates a new profile service
func NewProfileService(childRepo *repository.ChildRepository, defaultAvatarURL string) *ProfileService {
	return &ProfileService{
		childRepo:        childRepo,
		defaultAvatarURL: defaultAvatarURL,
	}
}

// CreateChild creates a child profile for a parent, assigning an avatar
// that matches the child's language and gender when one is configured
func (s *ProfileService) CreateChild(parentID int64, displayName string, age int, language, gender string) (*models.Child, error) {
	if err := validation.ValidateChildProfile(displayName, age, language, gender); err != nil {
		return nil, err
	}

	avatarURL, err := s.childRepo.AvatarURL(language, gender)
	if err != nil {
		log.Printf("Error looking up avatar for %s/%s: %v", language, gender, err)
		avatarURL = ""
	}
	if avatarURL == "" {
		avatarURL = s.defaultAvatarURL
	}

	child, err := s.childRepo.CreateChild(parentID, displayName, age, language, gender, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create child profile: %w", err)
	}

	return child, nil
}

// ListChildren retrieves all child profiles owned by a parent
func (s *ProfileService) ListChildren(parentID int64) ([]models.Child, error) {
	return s.childRepo.ListChildrenByParent(parentID)
}

// ChildForParent retrieves a child only if it belongs to the parent.
// Every operation that acts on a child goes through this check first.
func (s *ProfileService) ChildForParent(childID, parentID int64) (*models.Child, error) {
	child, err := s.childRepo.GetChildForParent(childID, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child: %w", err)
	}
	if child == nil {
		return nil, ErrAccessDenied
	}
	return child, nil
}
