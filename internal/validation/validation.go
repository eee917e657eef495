package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateChildProfile checks the fields supplied when creating or
// updating a child profile
func ValidateChildProfile(displayName string, age int, language, gender string) error {
	if err := ValidateName(displayName); err != nil {
		return err
	}
	if age < 2 || age > 17 {
		return ValidationError{Field: "age", Message: "age must be between 2 and 17"}
	}
	if strings.TrimSpace(language) == "" {
		return ValidationError{Field: "language", Message: "language is required"}
	}
	switch strings.ToLower(gender) {
	case "boy", "girl":
	default:
		return ValidationError{Field: "gender", Message: "gender must be 'boy' or 'girl'"}
	}
	return nil
}
