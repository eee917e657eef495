package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kulture/internal/config"
	"kulture/internal/database"
	"kulture/internal/game"
	"kulture/internal/handlers"
	"kulture/internal/repository"
	"kulture/internal/service"
	"kulture/internal/speech"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	parentRepo := repository.NewParentRepository(db)
	childRepo := repository.NewChildRepository(db)
	contentRepo := repository.NewContentRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if !emailService.IsEnabled() {
		log.Println("Email sending disabled (no sender address configured)")
	}

	authService := service.NewAuthService(parentRepo, emailService, cfg.JWTSecret, cfg.TokenDuration)
	profileService := service.NewProfileService(childRepo, cfg.DefaultAvatarURL)
	contentService := service.NewContentService(contentRepo, gameRepo)
	gameService := service.NewGameService(
		gameRepo,
		childRepo,
		contentRepo,
		game.NewGrader(game.NewLevenshteinScorer()),
		speech.NewStubTranscriber(),
		cfg.PassRatio,
	)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	profileHandler := handlers.NewProfileHandler(profileService)
	contentHandler := handlers.NewContentHandler(contentService, profileService)
	gameHandler := handlers.NewGameHandler(gameService, profileService)
	artifactHandler := handlers.NewArtifactHandler(gameService, profileService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/google", authHandler.GoogleLogin)

	// Protected parent routes
	mux.HandleFunc("GET /api/v1/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/v1/children", middleware.RequireAuth(profileHandler.CreateChild))
	mux.HandleFunc("GET /api/v1/children", middleware.RequireAuth(profileHandler.ListChildren))
	mux.HandleFunc("GET /api/v1/children/{id}", middleware.RequireAuth(profileHandler.GetChild))

	// Content routes
	mux.HandleFunc("GET /api/v1/modules", middleware.RequireAuth(contentHandler.ListModules))
	mux.HandleFunc("GET /api/v1/levels/{id}", middleware.RequireAuth(contentHandler.GetLevel))
	mux.HandleFunc("GET /api/v1/scenarios/{id}", middleware.RequireAuth(contentHandler.GetScenario))

	mux.HandleFunc("GET /api/v1/cards", middleware.RequireAuth(contentHandler.ListCards))

	// Game routes
	mux.HandleFunc("POST /api/v1/game/answers", middleware.RequireAuth(gameHandler.GradeAnswer))
	mux.HandleFunc("POST /api/v1/game/attempts", middleware.RequireAuth(gameHandler.SubmitAttempt))
	mux.HandleFunc("POST /api/v1/cards/{id}/complete", middleware.RequireAuth(gameHandler.CompleteCard))
	mux.HandleFunc("GET /api/v1/artifacts", middleware.RequireAuth(artifactHandler.ListArtifacts))

	// Wrap with CORS and logging middleware
	handler := handlers.Logging(handlers.CORS(mux))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
