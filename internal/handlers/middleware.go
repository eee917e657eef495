package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"kulture/internal/models"
	"kulture/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const ParentContextKey ContextKey = "parent"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService) *Middleware {
	return &Middleware{authService: authService}
}

// RequireAuth requires a valid bearer token and puts the authenticated
// parent in the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing bearer token", "", nil)
			return
		}

		parent, err := m.authService.Authenticate(token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), ParentContextKey, parent)
		next(w, r.WithContext(ctx))
	}
}

// GetParentFromContext retrieves the authenticated parent from the request context
func GetParentFromContext(ctx context.Context) *models.Parent {
	parent, ok := ctx.Value(ParentContextKey).(*models.Parent)
	if !ok {
		return nil
	}
	return parent
}

// Logging middleware logs HTTP requests with a per-request ID
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// CORS allows the browser frontend to call the API from another origin
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
