package server

import (
	"glimpse/internal/media"
	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/users/:id/profile. Public; a logged-in viewer
// additionally learns whether they follow the user.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	profile, err := s.socialService.GetProfile(c.Context(), userID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetFollowers handles GET /api/users/:id/followers.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	followers, err := s.socialService.Followers(c.Context(), userID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/users/:id/following.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	following, err := s.socialService.Following(c.Context(), userID, viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(following)
}

// Follow handles POST /api/users/:id/follow. Self-follows and duplicates
// are accepted no-ops.
func (s *Server) Follow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.socialService.Follow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Unfollow handles POST /api/users/:id/unfollow.
func (s *Server) Unfollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.socialService.Unfollow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// RemoveFollower handles POST /api/users/:id/remove-follower: the caller
// removes user :id from their own follower list.
func (s *Server) RemoveFollower(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.socialService.RemoveFollower(c.Context(), currentUserID(c), targetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// UpdateMyProfile handles PATCH /api/users/me (multipart). Accepts an
// optional bio field and an optional avatar image capped at 5MB.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	in := service.UpdateProfileInput{UserID: currentUserID(c)}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	if values, ok := form.Value["bio"]; ok && len(values) > 0 {
		in.Bio = &values[0]
	}

	if files, ok := form.File["avatar"]; ok && len(files) > 0 {
		file := files[0]
		if file.Size > media.MaxAvatarBytes {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Avatar too large (max 5MB)"))
		}
		if !media.IsImageType(file.Header.Get("Content-Type")) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Avatar must be an image"))
		}
		filename, saveErr := s.store.Save(c, file)
		if saveErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(saveErr))
		}
		in.Avatar = &filename
	}

	user, err := s.socialService.UpdateProfile(c.Context(), in)
	if err != nil {
		if in.Avatar != nil {
			s.store.Remove(*in.Avatar)
		}
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}
