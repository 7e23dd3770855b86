package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/http/handlers"
	"github.com/condogate/condogate/internal/repository"
	"github.com/condogate/condogate/internal/service"
	"github.com/condogate/condogate/pkg/config"
	"github.com/condogate/condogate/pkg/database"
	"github.com/condogate/condogate/pkg/events"
	"github.com/condogate/condogate/pkg/logger"
	mw "github.com/condogate/condogate/pkg/middleware"
)

func main() {
	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Connect to Redis for login rate limiting
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	residentRepo := repository.NewResidentRepository(pool)
	visitorRepo := repository.NewVisitorRepository(pool)
	loginLimiter := repository.NewLoginRateLimiter(redisClient, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)

	// Initialize services
	userDomainSvc := domain.NewUserDomainService(userRepo)
	tokens := service.NewJWTTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	userService := service.NewUserService(userRepo, userDomainSvc, eventBus)
	authService := service.NewAuthService(userRepo, tokens)
	residentService := service.NewResidentService(residentRepo, userRepo, eventBus)
	visitorService := service.NewVisitorService(visitorRepo, residentRepo, eventBus)

	// Initialize handlers
	h := handlers.New(userService, authService, residentService, visitorService, loginLimiter, cfg.Auth.JWTSecret)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", "*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)
	r.Use(mw.Metrics)

	// Routes
	r.Route("/", func(r chi.Router) {
		r.With(h.LoginRateLimit()).Post("/auth/login", h.Login)

		// Account creation is open; everything else requires a token.
		r.Post("/users", h.CreateUser)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireJWT())

			r.Get("/users", h.GetUsers)
			r.Get("/users/{id}", h.GetUser)
			r.Patch("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)

			r.Post("/residents", h.CreateResident)
			r.Get("/residents/{id}", h.GetResident)

			r.Post("/visitors", h.CreateVisitor)
			r.Get("/visitors", h.GetVisitors)
			r.Get("/visitors/{id}", h.GetVisitor)
			r.Patch("/visitors/{id}", h.UpdateVisitor)
		})
	})

	// Background purge of expired visitor passes
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	sweeper := service.NewPassSweeper(visitorRepo, eventBus, cfg.Passes.SweepInterval)
	go sweeper.Run(sweepCtx)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")
		stopSweep()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
