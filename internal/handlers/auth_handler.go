package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"kulture/internal/models"
	"kulture/internal/service"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthHandler handles signup, login and Google sign-in
type AuthHandler struct {
	authService *service.AuthService
	googleOAuth *oauth2.Config
}

// NewAuthHandler creates a new auth handler. The Google config may have
// an empty client ID, in which case Google sign-in is disabled.
func NewAuthHandler(authService *service.AuthService, googleClientID, googleClientSecret, googleRedirectURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		googleOAuth: &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  googleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type tokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	Parent      *models.Parent `json:"parent"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	token, parent, err := h.authService.Signup(req.Email, req.Password, req.FullName)
	if err != nil {
		respondServiceError(w, err, "Error during signup")
		return
	}

	respondJSON(w, http.StatusCreated, tokenResponse{AccessToken: token, TokenType: "bearer", Parent: parent})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	token, parent, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err, "Error during login")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", Parent: parent})
}

// GoogleLogin handles POST /api/v1/auth/google. The frontend sends the
// one-time authorization code it obtained from Google's popup flow.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth.ClientID == "" || h.googleOAuth.ClientSecret == "" {
		respondWithError(w, http.StatusServiceUnavailable, "Google sign-in is not configured", "", nil)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		respondWithError(w, http.StatusBadRequest, "Missing authorization code", "", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	oauthToken, err := h.googleOAuth.Exchange(ctx, req.Code)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Failed to verify Google sign-in", "Error exchanging Google code", err)
		return
	}

	user, err := h.fetchGoogleUser(ctx, oauthToken)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Failed to verify Google sign-in", "Error fetching Google user info", err)
		return
	}

	token, parent, err := h.authService.LoginGoogle(user.Email, user.Name, user.ID)
	if err != nil {
		respondServiceError(w, err, "Error during Google login")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", Parent: parent})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	parent := GetParentFromContext(r.Context())
	if parent == nil {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, parent)
}

type googleUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *AuthHandler) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*googleUser, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google user info returned status %d", resp.StatusCode)
	}

	var user googleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to parse Google user info: %w", err)
	}
	if user.Email == "" {
		return nil, fmt.Errorf("google user info missing email")
	}

	return &user, nil
}
