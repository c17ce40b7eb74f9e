package server

import (
	"errors"

	"glimpse/internal/media"
	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateStory handles POST /api/stories (multipart, single media file).
func (s *Server) CreateStory(c *fiber.Ctx) error {
	file, err := c.FormFile("media")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Story media file is required"))
	}

	mediaType := media.MediaTypeFor(file.Header.Get("Content-Type"))
	if mediaType == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported media type: "+file.Header.Get("Content-Type")))
	}

	filename, err := s.store.Save(c, file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	story, err := s.storyService.CreateStory(c.Context(), service.CreateStoryInput{
		UserID:    currentUserID(c),
		Media:     filename,
		MediaType: mediaType,
	})
	if err != nil {
		s.store.Remove(filename)
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}

// GetStoryBubbles handles GET /api/stories: the story tray for the feed.
func (s *Server) GetStoryBubbles(c *fiber.Ctx) error {
	bubbles, err := s.storyService.Bubbles(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(bubbles)
}

// GetMyStories handles GET /api/stories/me: the caller's active stories
// with per-story view counts.
func (s *Server) GetMyStories(c *fiber.Ctx) error {
	stories, err := s.storyService.OwnerStories(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stories)
}

// ViewStory handles GET /api/stories/user/:userId and
// GET /api/stories/user/:userId/:index. Index defaults to 0. Stepping past
// the last story redirects back to the feed rather than erroring, so a
// client can blindly request index+1 to advance.
func (s *Server) ViewStory(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	index := 0
	if raw := c.Params("index"); raw != "" {
		parsed, parseErr := c.ParamsInt("index")
		if parseErr != nil || parsed < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid story index"))
		}
		index = parsed
	}

	page, err := s.storyService.ViewStory(c.Context(), currentUserID(c), ownerID, index)
	if err != nil {
		if errors.Is(err, service.ErrStoryIndexOutOfRange) {
			return c.Redirect("/api/feed", fiber.StatusSeeOther)
		}
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// ReactToStory handles POST /api/stories/:storyId/react.
func (s *Server) ReactToStory(c *fiber.Ctx) error {
	storyID, err := s.parseID(c, "storyId")
	if err != nil {
		return nil
	}

	var req struct {
		Reaction string `json:"reaction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.storyService.React(c.Context(), currentUserID(c), storyID, req.Reaction); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GetStoryReactions handles GET /api/stories/:storyId/reactions (owner only).
func (s *Server) GetStoryReactions(c *fiber.Ctx) error {
	storyID, err := s.parseID(c, "storyId")
	if err != nil {
		return nil
	}

	reactions, err := s.storyService.Reactions(c.Context(), currentUserID(c), storyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reactions)
}

// GetStoryViews handles GET /api/stories/:storyId/views (owner only).
func (s *Server) GetStoryViews(c *fiber.Ctx) error {
	storyID, err := s.parseID(c, "storyId")
	if err != nil {
		return nil
	}

	views, err := s.storyService.Views(c.Context(), currentUserID(c), storyID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}
