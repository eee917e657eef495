package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"kulture/internal/models"
	"kulture/internal/repository"
	"kulture/internal/security"
	"kulture/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrGoogleOnlyAccount  = errors.New("account uses Google sign-in")
)

// AuthService handles parent authentication
type AuthService struct {
	parentRepo    *repository.ParentRepository
	emailService  *EmailService
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(parentRepo *repository.ParentRepository, emailService *EmailService, jwtSecret string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		parentRepo:    parentRepo,
		emailService:  emailService,
		jwtSecret:     jwtSecret,
		tokenDuration: tokenDuration,
	}
}

// Signup creates a new parent account and returns a bearer token
func (s *AuthService) Signup(email, password, fullName string) (string, *models.Parent, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return "", nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", nil, err
	}
	if err := validation.ValidateName(fullName); err != nil {
		return "", nil, err
	}

	existing, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	parent, err := s.parentRepo.CreateParent(email, passwordHash, fullName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create account: %w", err)
	}

	// Welcome email is best effort; signup succeeds without it
	if err := s.emailService.SendWelcomeEmail(context.Background(), parent.Email, parent.FullName); err != nil {
		log.Printf("Error sending welcome email to %s: %v", parent.Email, err)
	}

	token, err := security.GenerateToken(s.jwtSecret, parent.ID, s.tokenDuration)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, parent, nil
}

// Login authenticates a parent with email and password
func (s *AuthService) Login(email, password string) (string, *models.Parent, error) {
	parent, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load account: %w", err)
	}
	if parent == nil {
		return "", nil, ErrInvalidCredentials
	}

	if parent.PasswordHash == "" {
		return "", nil, ErrGoogleOnlyAccount
	}
	if !security.CheckPassword(password, parent.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := security.GenerateToken(s.jwtSecret, parent.ID, s.tokenDuration)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, parent, nil
}

// LoginGoogle signs in (or registers) a parent from a verified Google
// identity, linking the Google ID to an existing account on first use
func (s *AuthService) LoginGoogle(email, fullName, googleID string) (string, *models.Parent, error) {
	parent, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load account: %w", err)
	}

	if parent == nil {
		parent, err = s.parentRepo.CreateGoogleParent(email, fullName, googleID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create account: %w", err)
		}
		if err := s.emailService.SendWelcomeEmail(context.Background(), parent.Email, parent.FullName); err != nil {
			log.Printf("Error sending welcome email to %s: %v", parent.Email, err)
		}
	} else if parent.GoogleID == "" {
		// Account linking: first Google sign-in on a password account
		if err := s.parentRepo.SetGoogleID(parent.ID, googleID); err != nil {
			return "", nil, fmt.Errorf("failed to link Google account: %w", err)
		}
		parent.GoogleID = googleID
	}

	token, err := security.GenerateToken(s.jwtSecret, parent.ID, s.tokenDuration)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, parent, nil
}

// Authenticate resolves a bearer token to the parent it was issued for
func (s *AuthService) Authenticate(token string) (*models.Parent, error) {
	parentID, err := security.ParseToken(s.jwtSecret, token)
	if err != nil {
		return nil, err
	}
	return s.ParentByID(parentID)
}

// ParentByID retrieves a parent account, or ErrNotFound
func (s *AuthService) ParentByID(parentID int64) (*models.Parent, error) {
	parent, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	return parent, nil
}
