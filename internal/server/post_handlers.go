package server

import (
	"glimpse/internal/media"
	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. The home timeline carries both posts and
// story bubbles so a follower with zero posts still sees active stories.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 20)

	posts, err := s.postService.Feed(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	bubbles, err := s.storyService.Bubbles(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":   posts,
		"stories": bubbles,
	})
}

// CreatePost handles POST /api/posts (multipart). Accepts a caption plus up
// to 10 media files; every part must carry an allowed image or video type.
// Files are stored before the row insert, and cleaned up if the insert fails.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	content := c.FormValue("content")
	files := form.File["media"]
	if len(files) > media.MaxPostMediaFiles {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Too many media files (max 10)"))
	}

	// Validate every part before storing anything.
	for _, file := range files {
		if media.MediaTypeFor(file.Header.Get("Content-Type")) == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unsupported media type: "+file.Header.Get("Content-Type")))
		}
	}

	var stored []service.CreatePostMediaInput
	for _, file := range files {
		filename, saveErr := s.store.Save(c, file)
		if saveErr != nil {
			for _, m := range stored {
				s.store.Remove(m.Filename)
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(saveErr))
		}
		stored = append(stored, service.CreatePostMediaInput{
			Filename:  filename,
			MediaType: media.MediaTypeFor(file.Header.Get("Content-Type")),
		})
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Content: content,
		Media:   stored,
	})
	if err != nil {
		for _, m := range stored {
			s.store.Remove(m.Filename)
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id. Public; a logged-in viewer gets their
// liked flag, anonymous viewers always see liked=false.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.Context(), postID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts. Public, paginated; the
// profile endpoint only carries a user's most recent posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	p := parsePagination(c, 20)

	posts, err := s.postService.GetUserPosts(c.Context(), userID, p.Limit, p.Offset, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// UpdatePost handles PATCH /api/posts/:id (owner only, caption edit).
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
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

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id (owner only).
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ToggleLike handles POST /api/posts/:id/like. First call likes, second
// call unlikes; the response carries the post with its fresh like count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreateComment handles POST /api/posts/:id/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
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

	comment, err := s.postService.AddComment(c.Context(), currentUserID(c), postID, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments (public, oldest first).
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.postService.ListComments(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}
