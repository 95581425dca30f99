// Package server contains HTTP handlers and route setup for the API.
package server

import (
	"context"
	"fmt"

	"newsfeed/internal/cache"
	"newsfeed/internal/config"
	"newsfeed/internal/database"
	"newsfeed/internal/middleware"
	"newsfeed/internal/repository"
	"newsfeed/internal/service"
	"newsfeed/internal/sweeper"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redis       *redis.Client
	prom        *fiberprometheus.FiberPrometheus
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	signupRepo  repository.SignupAuthRepository
	postService *service.PostService
	authService *service.AuthService
	sweeper     *sweeper.Sweeper
}

// NewServer creates a server instance, connecting the database and Redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with a sqlite database and an optional miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	signupRepo := repository.NewSignupAuthRepository(db)

	// A per-server registry keeps repeated server construction (tests) from
	// double-registering collectors in the process-global default registry.
	prom := fiberprometheus.NewWithRegistry(prometheus.NewRegistry(), "newsfeed", "http", "", nil)

	s := &Server{
		config:     cfg,
		db:         db,
		redis:      redisClient,
		prom:       prom,
		userRepo:   userRepo,
		postRepo:   postRepo,
		signupRepo: signupRepo,
	}
	s.postService = service.NewPostService(postRepo)
	s.authService = service.NewAuthService(userRepo, signupRepo, cfg.JWTSecret, cfg.SignupTokenTTL)
	s.sweeper = sweeper.New(signupRepo, cfg.SweepInterval)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	s.prom.RegisterAt(app, "/metrics")
	app.Use(s.prom.Middleware)

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/verify", s.VerifySignup)
	auth.Post("/login", s.Login)

	// Public post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Get("/:id", s.GetPost)

	// Protected post routes
	authed := middleware.AuthRequired(s.config.JWTSecret)
	posts.Post("/", authed, s.CreatePost)
	posts.Put("/:id", authed, s.UpdatePost)
	posts.Delete("/:id", authed, s.DeletePost)
	posts.Post("/:id/like", authed, s.LikePost)
	posts.Delete("/:id/like", authed, s.UnlikePost)
}

// StartBackground launches background workers (the signup-token sweeper).
func (s *Server) StartBackground() {
	s.sweeper.Start()
}

// Shutdown stops background workers and releases held resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.sweeper.Stop(ctx); err != nil {
		return err
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
