package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/rag"
)

// AskRequest is the body of a POST /v1/ask request.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the answer payload, with latency measured around the
// engine call by this handler.
type AskResponse struct {
	Answer    string `json:"answer"`
	LatencyMS int64  `json:"latency_ms"`
}

// HealthResponse reports engine readiness.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handlePing returns a simple liveness response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleHealth reports whether the engine has finished startup ingestion.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	status := "initializing"
	if s.engine.Ready() {
		status = "ready"
	}
	return c.JSON(HealthResponse{Status: status})
}

// handleAsk answers a customer question through the query engine.
func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "question is required"})
	}

	start := time.Now()
	answer, err := s.engine.Ask(c.Context(), req.Question)
	latency := time.Since(start).Milliseconds()

	switch {
	case errors.Is(err, rag.ErrNotReady):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "engine is still initializing, retry shortly"})
	case errors.Is(err, rag.ErrRetrievalUnavailable):
		s.logger.Error("retrieval unavailable",
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "retrieval backend unavailable"})
	case err != nil:
		s.logger.Error("ask failed",
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal error"})
	}

	return c.JSON(AskResponse{
		Answer:    answer.Answer,
		LatencyMS: latency,
	})
}
