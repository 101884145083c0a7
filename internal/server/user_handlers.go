package server

import (
	"context"
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	// Unbounded collection scan; by-id reads ride the plain request context.
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(users)
}

// GetUserByID handles GET /api/users/:userId
func (s *Server) GetUserByID(c *fiber.Ctx) error {
	id, err := s.parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /api/users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PUT /api/users/:userId
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.Context(), id, service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:userId. Deleting a user cascades to
// every thought authored under the removed username.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseObjectID(c, "userId")
	if err != nil {
		return nil
	}

	res, err := s.userService.DeleteUser(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{
		"message":         "User and associated thoughts deleted",
		"thoughtsDeleted": res.ThoughtsDeleted,
	})
}
