package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Reading the list marks
// every unread notification read.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	notifications, err := s.notifService.List(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notifications)
}

// GetUnreadCount handles GET /api/notifications/unread-count, the badge
// value clients poll for.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notifService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}
