// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/niyati34/college-meme-page/internal/models"
	"github.com/niyati34/college-meme-page/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMemes handles GET /api/memes. Supports category, search, tags, sortBy
// and page/limit query parameters. Authentication is optional; signed-in
// users get their liked flags resolved.
// @Summary Browse memes
// @Tags memes
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Title/tag search"
// @Param tags query string false "Comma-separated tag filter"
// @Param sortBy query string false "trending|popular|mostViewed|oldest|newest"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.MemePage
// @Router /memes [get]
func (s *Server) GetMemes(c *fiber.Ctx) error {
	page, err := s.parsePagination(c)
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	var tags []string
	if raw := c.Query("tags"); raw != "" {
		tags = splitCSV(raw)
	}

	result, err := s.memeService.ListMemes(c.UserContext(), service.ListMemesInput{
		Page:          page,
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		Tags:          tags,
		SortBy:        c.Query("sortBy"),
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetTrendingMemes handles GET /api/memes/trending
func (s *Server) GetTrendingMemes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	currentUserID, _ := s.optionalUserID(c)

	memes, err := s.memeService.TrendingMemes(c.UserContext(), limit, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"memes": memes})
}

// SearchMemes handles GET /api/memes/search?q=
func (s *Server) SearchMemes(c *fiber.Ctx) error {
	page, err := s.parsePagination(c)
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	result, err := s.memeService.SearchMemes(c.UserContext(), c.Query("q"), page, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetMeme handles GET /api/memes/:id
func (s *Server) GetMeme(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	meme, err := s.memeService.GetMeme(c.UserContext(), id, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(meme)
}

// CreateMeme handles POST /api/memes (protected)
// @Summary Publish a meme
// @Tags memes
// @Accept json
// @Produce json
// @Param request body service.CreateMemeInput true "Meme payload"
// @Success 201 {object} models.MemeView
// @Failure 400 {object} models.ErrorResponse
// @Router /memes [post]
func (s *Server) CreateMeme(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string   `json:"title"`
		MediaURL    string   `json:"media_url"`
		AspectRatio string   `json:"aspect_ratio"`
		Categories  []string `json:"categories"`
		Tags        []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	meme, err := s.memeService.CreateMeme(c.UserContext(), service.CreateMemeInput{
		AuthorID:    userID,
		Title:       req.Title,
		MediaURL:    req.MediaURL,
		AspectRatio: req.AspectRatio,
		Categories:  req.Categories,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meme)
}

// RegisterView handles POST /api/memes/:id/view. Views are anonymous counters.
func (s *Server) RegisterView(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.memeService.RegisterView(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterShare handles POST /api/memes/:id/share
func (s *Server) RegisterShare(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.memeService.RegisterShare(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeMeme handles POST /api/memes/:id/like (protected). Toggles the like.
func (s *Server) LikeMeme(c *fiber.Ctx) error {
	return s.toggleReaction(c, models.ReactionLike)
}

// DislikeMeme handles POST /api/memes/:id/dislike (protected). Toggles the dislike.
func (s *Server) DislikeMeme(c *fiber.Ctx) error {
	return s.toggleReaction(c, models.ReactionDislike)
}

func (s *Server) toggleReaction(c *fiber.Ctx, kind string) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	active, err := s.memeService.ToggleReaction(c.UserContext(), userID, id, kind)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"kind":   kind,
		"active": active,
	})
}

// DeleteMeme handles DELETE /api/memes/:id (author or admin)
func (s *Server) DeleteMeme(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.memeService.DeleteMeme(c.UserContext(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// SetMemeStatus handles PUT /api/admin/memes/:id/status (admin only)
func (s *Server) SetMemeStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.memeService.SetStatus(c.UserContext(), id, req.Status); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": req.Status})
}
