// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/middleware"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *mongo.Database
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	thoughtRepo    repository.ThoughtRepository
	userService    *service.UserService
	thoughtService *service.ThoughtService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("ripple-api"),
		userRepo:       userRepo,
		thoughtRepo:    thoughtRepo,
		userService:    service.NewUserService(userRepo, thoughtRepo),
		thoughtService: service.NewThoughtService(thoughtRepo, userRepo),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Propagate the request ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry span per request (no-op tracer unless tracing is enabled)
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit, so browser clients
	// still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Post("/", s.CreateUser)
	users.Get("/:userId", s.GetUserByID)
	users.Put("/:userId", s.UpdateUser)
	users.Delete("/:userId", s.DeleteUser)
	users.Post("/:userId/friends/:friendId", s.AddFriend)
	users.Delete("/:userId/friends/:friendId", s.RemoveFriend)

	thoughts := api.Group("/thoughts")
	thoughts.Get("/", s.GetAllThoughts)
	thoughts.Post("/", s.CreateThought)
	thoughts.Get("/:thoughtId", s.GetThoughtByID)
	thoughts.Put("/:thoughtId", s.UpdateThought)
	thoughts.Delete("/:thoughtId", s.DeleteThought)
	thoughts.Post("/:thoughtId/reactions", s.AddReaction)
	thoughts.Delete("/:thoughtId/reactions/:reactionId", s.RemoveReaction)
}

// LivenessCheck handles GET /health/live
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	return database.Disconnect(ctx)
}
