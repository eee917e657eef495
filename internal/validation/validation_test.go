package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "test@example.com", wantErr: false},
		{name: "valid email with plus", email: "user+tag@example.com", wantErr: false},
		{name: "missing @", email: "testexample.com", wantErr: true},
		{name: "missing domain", email: "test@", wantErr: true},
		{name: "empty string", email: "", wantErr: true},
		{name: "spaces in email", email: "test @example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "password123", wantErr: false},
		{name: "exactly 8 characters", password: "pass1234", wantErr: false},
		{name: "too short", password: "pass123", wantErr: true},
		{name: "empty password", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChildProfile(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		age         int
		language    string
		gender      string
		wantErr     bool
	}{
		{name: "valid profile", displayName: "Deniz", age: 7, language: "turkish", gender: "boy"},
		{name: "valid girl profile", displayName: "Ela", age: 5, language: "turkish", gender: "girl"},
		{name: "uppercase gender accepted", displayName: "Deniz", age: 7, language: "turkish", gender: "Girl"},
		{name: "empty name", displayName: "", age: 7, language: "turkish", gender: "boy", wantErr: true},
		{name: "single character name", displayName: "D", age: 7, language: "turkish", gender: "boy", wantErr: true},
		{name: "age too low", displayName: "Deniz", age: 1, language: "turkish", gender: "boy", wantErr: true},
		{name: "age too high", displayName: "Deniz", age: 30, language: "turkish", gender: "boy", wantErr: true},
		{name: "missing language", displayName: "Deniz", age: 7, language: " ", gender: "boy", wantErr: true},
		{name: "unknown gender", displayName: "Deniz", age: 7, language: "turkish", gender: "other", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChildProfile(tt.displayName, tt.age, tt.language, tt.gender)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChildProfile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
