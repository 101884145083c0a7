package server

import (
	"context"
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllThoughts handles GET /api/thoughts
func (s *Server) GetAllThoughts(c *fiber.Ctx) error {
	// Unbounded collection scan; by-id reads ride the plain request context.
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	thoughts, err := s.thoughtService.ListThoughts(ctx)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(thoughts)
}

// GetThoughtByID handles GET /api/thoughts/:thoughtId
func (s *Server) GetThoughtByID(c *fiber.Ctx) error {
	id, err := s.parseObjectID(c, "thoughtId")
	if err != nil {
		return nil
	}

	thought, err := s.thoughtService.GetThoughtByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(thought)
}

// CreateThought handles POST /api/thoughts
func (s *Server) CreateThought(c *fiber.Ctx) error {
	var req struct {
		ThoughtText string     `json:"thoughtText"`
		Username    string     `json:"username"`
		CreatedAt   *time.Time `json:"createdAt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.CreateThought(c.Context(), service.CreateThoughtInput{
		ThoughtText: req.ThoughtText,
		Username:    req.Username,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(thought)
}

// UpdateThought handles PUT /api/thoughts/:thoughtId
func (s *Server) UpdateThought(c *fiber.Ctx) error {
	id, err := s.parseObjectID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req struct {
		ThoughtText *string `json:"thoughtText"`
		Username    *string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.UpdateThought(c.Context(), id, service.UpdateThoughtInput{
		ThoughtText: req.ThoughtText,
		Username:    req.Username,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(thought)
}

// DeleteThought handles DELETE /api/thoughts/:thoughtId
func (s *Server) DeleteThought(c *fiber.Ctx) error {
	id, err := s.parseObjectID(c, "thoughtId")
	if err != nil {
		return nil
	}

	if _, err := s.thoughtService.DeleteThought(c.Context(), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Thought deleted"})
}
