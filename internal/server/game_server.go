package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphandlers "github.com/anhbaysgalan1/balatro/internal/application/handlers"
	"github.com/anhbaysgalan1/balatro/internal/auth"
	"github.com/anhbaysgalan1/balatro/internal/config"
	"github.com/anhbaysgalan1/balatro/internal/database"
	"github.com/anhbaysgalan1/balatro/internal/engine"
	"github.com/anhbaysgalan1/balatro/internal/handlers"
	custommiddleware "github.com/anhbaysgalan1/balatro/internal/middleware"
	"github.com/anhbaysgalan1/balatro/internal/services"
	"github.com/anhbaysgalan1/balatro/server"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

const tokenIssuer = "balatro"

type GameServer struct {
	config               *config.Config
	db                   *database.DB
	rdb                  *redis.Client
	stores               *engine.Stores
	jwtManager           *auth.JWTManager
	authMiddleware       *auth.AuthMiddleware
	gameStateService     *services.GameStateService
	highscoreService     *services.HighscoreService
	authService          *services.AuthService
	apiRateLimiter       *custommiddleware.RateLimiter
	authRateLimiter      *custommiddleware.RateLimiter
	highscoreRateLimiter *custommiddleware.RateLimiter
	upgrader             *websocket.Upgrader
	server               *http.Server
	hub                  *server.Hub
}

func NewGameServer(cfg *config.Config) (*GameServer, error) {
	// Setup database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Tables and leaderboard indexes
	if err := db.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis is optional; without it every read goes to Postgres
	var rdb *redis.Client
	if cfg.CacheEnabled {
		rdb, err = database.NewRedisClient(context.Background(), cfg)
		if err != nil {
			slog.Warn("Redis unavailable, running without cache", "error", err)
			rdb = nil
		}
	}

	stores, err := engine.NewStoresWithRedis(db.DB, rdb)
	if err != nil {
		return nil, fmt.Errorf("failed to create stores: %w", err)
	}

	// Setup JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, tokenIssuer, cfg.TokenTTL)

	// Setup services
	gameStateService := services.NewGameStateService(stores.GameStates, stores.Cache)
	highscoreService := services.NewHighscoreService(stores.Highscores, stores.Players, stores.Cache)
	authService := services.NewAuthService(stores.Players, jwtManager)

	// Setup WebSocket hub
	hub := server.NewHub(
		apphandlers.NewCommandHandler(stores.Events),
		apphandlers.NewQueryHandler(stores.Events),
		gameStateService,
		highscoreService,
		rdb,
	)

	return &GameServer{
		config:               cfg,
		db:                   db,
		rdb:                  rdb,
		stores:               stores,
		jwtManager:           jwtManager,
		authMiddleware:       auth.NewAuthMiddleware(jwtManager),
		gameStateService:     gameStateService,
		highscoreService:     highscoreService,
		authService:          authService,
		apiRateLimiter:       custommiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		authRateLimiter:      custommiddleware.NewAuthRateLimiter(),
		highscoreRateLimiter: custommiddleware.NewRateLimiter(cfg.HighscoreLimitRPS, cfg.HighscoreLimitBurst).KeyBy(playerOrIP),
		upgrader:             server.NewUpgrader(cfg.AllowedOrigins),
		hub:                  hub,
	}, nil
}

func (s *GameServer) Start() error {
	// Setup router
	router := s.setupRouter()

	// Create HTTP server
	s.server = &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start WebSocket hub
	go s.hub.Run()

	// Start server in goroutine
	go func() {
		slog.Info("Starting game server", "port", s.config.Port, "cache", s.rdb != nil)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	return s.Shutdown()
}

func (s *GameServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}

	s.hub.Stop()

	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}

	// Close database connection
	if err := s.db.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}

	// Close rate limiters
	s.apiRateLimiter.Close()
	s.authRateLimiter.Close()
	s.highscoreRateLimiter.Close()

	slog.Info("Server shutdown complete")
	return nil
}

func (s *GameServer) setupRouter() chi.Router {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(auth.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(auth.SecurityHeaders)
	r.Use(s.apiRateLimiter.RateLimit) // Apply global rate limiting

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(handlers.NotFound)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Balatro Game Backend API","version":"1.0.0","status":"running"}`))
	})

	// WebSocket endpoint
	r.With(s.authMiddleware.RequireQueryToken).Get("/ws", s.serveWebSocket)

	healthHandler := handlers.NewHealthHandler(s.db, s.stores.Cache)
	gameStateHandler := handlers.NewGameStateHandler(s.gameStateService)
	highscoreHandler := handlers.NewHighscoreHandler(s.highscoreService)
	authHandler := handlers.NewAuthHandler(s.authService)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/info", healthHandler.Info)

		// Guest accounts with stricter rate limiting
		r.Group(func(r chi.Router) {
			r.Use(s.authRateLimiter.RateLimit)
			r.Mount("/auth", authHandler.Routes())
		})

		// A token is optional; when present it must belong to the userId
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware.OptionalAuth)

			r.Mount("/game-state", gameStateHandler.Routes())

			r.Mount("/highscores", highscoreHandler.Routes(s.highscoreRateLimiter.RateLimit))
		})
	})

	return r
}

// serveWebSocket upgrades a request that RequireQueryToken already authenticated
func (s *GameServer) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	displayName, _ := auth.GetDisplayNameFromContext(r.Context())

	server.ServeWs(s.hub, s.upgrader, w, r, userID.String(), displayName)
}

// playerOrIP buckets highscore submissions by token user, falling back to the
// client address for anonymous requests
func playerOrIP(r *http.Request) string {
	if userID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		return "player:" + userID.String()
	}
	return "ip:" + custommiddleware.ClientIP(r)
}
