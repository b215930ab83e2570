// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"time"

	_ "realme/docs" // swagger docs
	"realme/internal/bootstrap"
	"realme/internal/config"
	"realme/internal/featureflags"
	"realme/internal/middleware"
	"realme/internal/models"
	"realme/internal/repository"
	"realme/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config            *config.Config
	db                *gorm.DB
	redis             *redis.Client
	app               *fiber.App
	promMiddleware    *fiberprometheus.FiberPrometheus
	flags             *featureflags.Manager
	shutdownCtx       context.Context
	shutdownFn        context.CancelFunc
	userRepo          repository.UserRepository
	profileRepo       repository.ProfileRepository
	communityRepo     repository.CommunityRepository
	membershipRepo    repository.MembershipRepository
	postRepo          repository.PostRepository
	commentRepo       repository.CommentRepository
	adminRepo         repository.AdminRepository
	communityService  *service.CommunityService
	membershipService *service.MembershipService
	postService       *service.PostService
	commentService    *service.CommentService
	feedService       *service.FeedService
	profileService    *service.ProfileService
	adminService      *service.AdminService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return nil, err
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and an optional Redis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("realme-api"),
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       repository.NewUserRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		communityRepo:  repository.NewCommunityRepository(db),
		membershipRepo: repository.NewMembershipRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		adminRepo:      repository.NewAdminRepository(db),
	}

	server.communityService = service.NewCommunityService(server.communityRepo, server.membershipRepo, server.isAdminByUserID)
	server.membershipService = service.NewMembershipService(server.membershipRepo, server.communityRepo, server.isAdminByUserID)
	server.postService = service.NewPostService(server.postRepo, server.communityRepo, server.membershipRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo, server.membershipRepo)
	server.feedService = service.NewFeedService(server.membershipRepo, server.postRepo)
	server.profileService = service.NewProfileService(server.profileRepo, server.isAdminByUserID)
	server.adminService = service.NewAdminService(server.adminRepo, server.profileRepo)

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
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Authentication gate: resolves bearer tokens to a caller identity but
	// never rejects a request on its own. Runs before the request logger so
	// log lines carry user_id when available.
	app.Use(s.Authenticate())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
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

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Community routes. Endpoints enforce their own caller requirements;
	// there is no blanket auth group.
	communities := api.Group("/communities")
	communities.Post("/", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_community"), s.CreateCommunity)
	communities.Get("/", s.ListCommunities)
	// Specific /:id/:resource routes BEFORE generic /:id routes
	communities.Get("/:id/posts", s.ListCommunityPosts)
	communities.Post("/:id/members", s.JoinCommunity)
	communities.Delete("/:id/members/me", s.LeaveCommunity)
	communities.Delete("/:id/members/:profileId", s.RemoveCommunityMember)
	communities.Get("/:id", s.GetCommunity)
	communities.Patch("/:id", s.UpdateCommunity)
	communities.Delete("/:id", s.DeleteCommunity)

	// Post routes
	posts := api.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id/comments", s.ListPostComments)
	posts.Get("/:id", s.GetPost)
	posts.Patch("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	// Personalized feed
	api.Get("/feed", s.GetFeed)

	// Comment routes
	comments := api.Group("/comments")
	comments.Post("/", middleware.RateLimit(
		s.redis, 20, 5*time.Minute, "create_comment"), s.CreateComment)
	comments.Patch("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	// Profile routes
	profiles := api.Group("/profiles")
	profiles.Get("/", s.ListPublicProfiles)
	profiles.Get("/me", s.GetMyProfile)
	profiles.Patch("/me", s.UpdateMyProfile)
	profiles.Get("/:id", s.GetProfile)

	// Admin routes
	admin := api.Group("/admin")
	admin.Post("/verify-profile", s.VerifyProfile)
	admin.Post("/add-admin", s.AddAdmin)
	admin.Delete("/remove-admin/:userId", s.RemoveAdmin)
	admin.Get("/list", s.ListAdmins)
	admin.Get("/flags", s.ListFeatureFlags)
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
		// The API stays usable without Redis, just degraded.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Real.me API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
