package server

import (
	"errors"
	"testing"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"id":         "ID",
		"userId":     "user ID",
		"friendId":   "friend ID",
		"thoughtId":  "thought ID",
		"reactionId": "reaction ID",
		"slug":       "slug",
	}
	for param, want := range cases {
		assert.Equal(t, want, humanizeParam(param), param)
	}
}

func TestMapServiceError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", models.NewNotFoundError("User", "abc"), fiber.StatusNotFound},
		{"validation", models.NewValidationError("bad"), fiber.StatusBadRequest},
		{"conflict", models.NewConflictError("taken"), fiber.StatusBadRequest},
		{"internal", models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, mapServiceError(tc.err))
		})
	}
}
