package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SuggestCaption handles POST /api/captions/suggest. The generator is a
// local stub; the endpoint shape is stable so a real model can slot in
// behind it later.
func (s *Server) SuggestCaption(c *fiber.Ctx) error {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	suggestions, err := s.captionService.Suggest(req.Topic)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":          true,
		"suggestions": suggestions,
	})
}
