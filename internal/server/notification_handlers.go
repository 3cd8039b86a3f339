// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications (protected)
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	result, err := s.notificationService.ListNotifications(c.UserContext(), userID, page)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// MarkNotificationRead handles POST /api/notifications/:id/read (protected)
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.UserContext(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all (protected)
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	updated, err := s.notificationService.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}
