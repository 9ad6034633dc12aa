package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/rag"
)

// Server is the API server answering customer questions over HTTP.
type Server struct {
	config Config
	engine *rag.Engine
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server over the injected engine.
func NewServer(config Config, engine *rag.Engine, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		engine: engine,
		logger: logger,
		app:    app,
	}

	app.Use(s.requestLogger)

	app.Get("/ping", s.handlePing)
	app.Get("/health", s.handleHealth)
	app.Post("/v1/ask", s.handleAsk)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// requestLogger tags each request with an ID and logs its outcome.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	c.Locals("request_id", requestID)

	start := time.Now()
	err := c.Next()

	s.logger.Debug("handled request",
		zap.String("request_id", requestID),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	return err
}
