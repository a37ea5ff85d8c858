// Package server contains the HTTP handlers for the application's API
// endpoints and the Fiber app wiring around them.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pinboard/internal/cache"
	"pinboard/internal/config"
	"pinboard/internal/database"
	"pinboard/internal/lifecycle"
	"pinboard/internal/mailer"
	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/observability"
	"pinboard/internal/repository"
	"pinboard/internal/service"
	"pinboard/internal/storage"
	"pinboard/internal/token"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *token.Manager
	images         storage.Store

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	boardRepo   repository.BoardRepository
	pinRepo     repository.PinRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	followRepo  repository.FollowRepository

	authService    *service.AuthService
	profileService *service.ProfileService
	followService  *service.FollowService
	boardService   *service.BoardService
	pinService     *service.PinService
	commentService *service.CommentService
	likeService    *service.LikeService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var mail service.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	} else {
		mail = mailer.NewLogMailer(middleware.Logger)
	}

	return NewServerWithDeps(cfg, db, redisClient, mail)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and the
// mail collaborator first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, mail service.Mailer) (*Server, error) {
	tokens, err := token.NewManager(cfg.JWTSecret, 0, time.Duration(cfg.ActivationTTLHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	pinRepo := repository.NewPinRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := observability.InitMetrics("pinboard-api")
	images := storage.NewLocalStore(cfg.ImageUploadDir, cfg.ImageMaxUploadSizeMB)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		tokens:         tokens,
		images:         images,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		boardRepo:      boardRepo,
		pinRepo:        pinRepo,
		commentRepo:    commentRepo,
		likeRepo:       likeRepo,
		followRepo:     followRepo,
	}

	server.profileService = service.NewProfileService(profileRepo, images)

	// User post-create hooks: a profile always exists for a registered
	// user, created in the same request as the user row.
	userHooks := lifecycle.New[*models.User](middleware.Logger)
	userHooks.OnCreate(server.profileService.CreateForUser)

	// Pin post-delete hooks: the stored image files follow their pin.
	pinHooks := lifecycle.New[*models.Pin](middleware.Logger)
	pinHooks.OnDelete(func(ctx context.Context, pin *models.Pin) error {
		return images.Delete(ctx, pin.Image)
	})

	server.authService = service.NewAuthService(userRepo, tokens, mail, userHooks, cfg.PublicBaseURL)
	server.followService = service.NewFollowService(followRepo, profileRepo, cfg.DefaultPageSize)
	server.boardService = service.NewBoardService(boardRepo, profileRepo, cfg.DefaultPageSize)
	server.pinService = service.NewPinService(pinRepo, boardRepo, commentRepo,
		images, pinHooks, cfg.DefaultPageSize, cfg.CommentsPageSize)
	server.commentService = service.NewCommentService(commentRepo, pinRepo, cfg.CommentsPageSize)
	server.likeService = service.NewLikeService(likeRepo, pinRepo, cfg.LikesPageSize)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on
	// error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
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
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Pinboard Metrics Dashboard",
	}))

	// Stored images
	app.Static("/media", s.config.ImageUploadDir)

	authRequired := middleware.AuthRequired(s.tokens)
	optionalAuth := middleware.OptionalAuth(s.tokens)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Get("/activate/:id/:token", s.Activate)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Profile routes. Reads are public; follow-edge mutation and profile
	// update require authentication.
	profiles := api.Group("/profiles")
	profiles.Get("/:slug/followers", s.GetFollowers)
	profiles.Get("/:slug/following", s.GetFollowing)
	profiles.Get("/:slug/boards", s.GetProfileBoards)
	profiles.Post("/:slug/follows", authRequired, s.FollowProfile)
	profiles.Delete("/:slug/follows", authRequired, s.UnfollowProfile)
	profiles.Put("/:slug", authRequired, s.UpdateProfile)
	profiles.Get("/:slug", s.GetProfile)

	// Board routes
	boards := api.Group("/boards")
	boards.Post("/", authRequired, s.CreateBoard)
	boards.Get("/:id", s.GetBoard)
	boards.Put("/:id", authRequired, s.UpdateBoard)
	boards.Delete("/:id", authRequired, s.DeleteBoard)

	// Pin routes. Define specific /:id/:resource routes BEFORE generic /:id.
	pins := api.Group("/pins")
	pins.Get("/", optionalAuth, s.GetPins)
	pins.Post("/", authRequired, s.CreatePin)
	pins.Get("/:id/likes", s.GetLikes)
	pins.Post("/:id/likes", authRequired, s.LikePin)
	pins.Delete("/:id/likes", authRequired, s.UnlikePin)
	pins.Get("/:id/comments", s.GetComments)
	pins.Post("/:id/comments", authRequired, s.CreateComment)
	pins.Get("/:id", optionalAuth, s.GetPin)
	pins.Put("/:id", authRequired, s.UpdatePin)
	pins.Delete("/:id", authRequired, s.DeletePin)

	// Comment routes (mutation only; listing hangs off the pin)
	comments := api.Group("/comments")
	comments.Put("/:id", authRequired, s.UpdateComment)
	comments.Delete("/:id", authRequired, s.DeleteComment)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis only backs caching and rate limiting, so its absence
		// degrades rather than fails readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// currentUserID returns the authenticated user's ID, or 0 for anonymous
// requests.
func (s *Server) currentUserID(c *fiber.Ctx) uint {
	if userID, ok := c.Locals("userID").(uint); ok {
		return userID
	}
	return 0
}

// newApp builds the Fiber app with all middleware and routes attached.
func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Pinboard API",
		BodyLimit: (s.config.ImageMaxUploadSizeMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.newApp()
	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
