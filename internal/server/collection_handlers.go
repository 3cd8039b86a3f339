// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/service"

	"github.com/gofiber/fiber/v2"
)

type collectionRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CoverImage  string   `json:"cover_image"`
	IsPublic    *bool    `json:"is_public"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// CreateCollection handles POST /api/collections (protected)
func (s *Server) CreateCollection(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req collectionRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	collection, err := s.collectionService.CreateCollection(c.UserContext(), service.CollectionInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		IsPublic:    req.IsPublic,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(collection)
}

// GetCollection handles GET /api/collections/:id. Private collections are
// visible only to their owner.
func (s *Server) GetCollection(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	collection, err := s.collectionService.GetCollection(c.UserContext(), id, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(collection)
}

// GetPublicCollections handles GET /api/collections (public)
func (s *Server) GetPublicCollections(c *fiber.Ctx) error {
	page, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	collections, err := s.collectionService.ListPublicCollections(c.UserContext(), page)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(collections)
}

// GetMyCollections handles GET /api/collections/me (protected, includes private)
func (s *Server) GetMyCollections(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page, err := s.parsePagination(c)
	if err != nil {
		return nil
	}

	collections, err := s.collectionService.ListUserCollections(c.UserContext(), userID, page, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(collections)
}

// GetUserCollections handles GET /api/users/:id/collections. Private
// collections appear only when the requester is the owner.
func (s *Server) GetUserCollections(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, err := s.parsePagination(c)
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	collections, err := s.collectionService.ListUserCollections(c.UserContext(), id, page, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(collections)
}

// UpdateCollection handles PUT /api/collections/:id (owner only)
func (s *Server) UpdateCollection(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req collectionRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	collection, err := s.collectionService.UpdateCollection(c.UserContext(), id, service.CollectionInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		IsPublic:    req.IsPublic,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(collection)
}

// DeleteCollection handles DELETE /api/collections/:id (owner only)
func (s *Server) DeleteCollection(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.collectionService.DeleteCollection(c.UserContext(), id, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// AddMemeToCollection handles POST /api/collections/:id/memes/:memeId (owner only)
func (s *Server) AddMemeToCollection(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	memeID, err := s.parseID(c, "memeId")
	if err != nil {
		return nil
	}

	if err := s.collectionService.AddMeme(c.UserContext(), id, memeID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// RemoveMemeFromCollection handles DELETE /api/collections/:id/memes/:memeId (owner only)
func (s *Server) RemoveMemeFromCollection(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	memeID, err := s.parseID(c, "memeId")
	if err != nil {
		return nil
	}

	if err := s.collectionService.RemoveMeme(c.UserContext(), id, memeID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
