package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddReaction handles POST /api/thoughts/:thoughtId/reactions
func (s *Server) AddReaction(c *fiber.Ctx) error {
	thoughtID, err := s.parseObjectID(c, "thoughtId")
	if err != nil {
		return nil
	}

	var req struct {
		ReactionBody string `json:"reactionBody"`
		Username     string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thought, err := s.thoughtService.AddReaction(c.Context(), thoughtID, service.AddReactionInput{
		ReactionBody: req.ReactionBody,
		Username:     req.Username,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(thought)
}

// RemoveReaction handles DELETE /api/thoughts/:thoughtId/reactions/:reactionId
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	thoughtID, err := s.parseObjectID(c, "thoughtId")
	if err != nil {
		return nil
	}
	reactionID, err := s.parseObjectID(c, "reactionId")
	if err != nil {
		return nil
	}

	thought, err := s.thoughtService.RemoveReaction(c.Context(), thoughtID, reactionID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(thought)
}
