package server

import (
	"errors"
	"strings"
	"unicode"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseObjectID extracts a route parameter by name as a BSON ObjectId.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "userId" ->
// "Invalid user ID", "reactionId" -> "Invalid reaction ID").
func (s *Server) parseObjectID(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return primitive.NilObjectID, errResponseWritten
	}
	return id, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "reactionId" -> "reaction ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// mapServiceError translates an AppError code into an HTTP status. Conflicts
// map to 400 like validation failures; the body carries the distinct code.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeValidation, models.CodeConflict:
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}
