package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMessages handles GET /api/messages/:userId?after=N. Returns messages
// exchanged with :userId whose ID is strictly greater than the cursor,
// ascending; clients track the highest ID seen and poll.
func (s *Server) GetMessages(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	after := c.QueryInt("after", 0)
	if after < 0 {
		after = 0
	}

	messages, err := s.messageService.Fetch(c.Context(), currentUserID(c), otherID, uint(after))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":       true,
		"messages": messages,
	})
}

// SendMessage handles POST /api/messages/:userId.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Send(c.Context(), currentUserID(c), otherID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"message": message,
	})
}
