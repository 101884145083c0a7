package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddFriend handles POST /api/users/:userId/friends/:friendId
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID, err := s.parseObjectID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := s.parseObjectID(c, "friendId")
	if err != nil {
		return nil
	}

	user, err := s.userService.AddFriend(c.Context(), userID, friendID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// RemoveFriend handles DELETE /api/users/:userId/friends/:friendId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, err := s.parseObjectID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := s.parseObjectID(c, "friendId")
	if err != nil {
		return nil
	}

	user, err := s.userService.RemoveFriend(c.Context(), userID, friendID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}
