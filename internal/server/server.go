package server

import (
	"log"
	"time"

	"humanlenk-be/internal/bootstrap"
	"humanlenk-be/internal/config"
	"humanlenk-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
	startedAt time.Time
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, matches the upload cap
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.NewRateLimitMiddleware(container.Limiter))

	isProd := cfg.App.Environment == "production"
	app.Use(serverutils.NewErrorHandlerMiddleware(container.SysLogger, isProd))

	srv := &Server{
		app:       app,
		cfg:       cfg,
		container: container,
		startedAt: time.Now(),
	}

	app.Get("/health", srv.health)
	registerRoutes(app, cfg, container)

	return srv
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"status":    "ok",
			"uptime":    int64(time.Since(s.startedAt).Seconds()),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")
	auth := serverutils.NewJwtMiddleware(cfg.JWT.Secret)

	c.AuthController.RegisterRoutes(api, auth)
	c.ChatController.RegisterRoutes(api, auth)
	c.FileController.RegisterRoutes(api, auth)
	c.SurveyController.RegisterRoutes(api, auth)
	c.AdminController.RegisterRoutes(api, auth)
}
