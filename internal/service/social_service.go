package service

import (
	"context"
	"strings"

	"glimpse/internal/media"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/validation"
)

type SocialService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	notifier   *NotificationService
	store      *media.Store
}

// Profile is a user page: the user, their graph counts, and their posts.
type Profile struct {
	User           *models.User   `json:"user"`
	FollowersCount int64          `json:"followers_count"`
	FollowingCount int64          `json:"following_count"`
	Posts          []*models.Post `json:"posts"`
}

type UpdateProfileInput struct {
	UserID uint
	Bio    *string
	Avatar *string
}

func NewSocialService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	notifier *NotificationService,
	store *media.Store,
) *SocialService {
	return &SocialService{
		followRepo: followRepo,
		userRepo:   userRepo,
		postRepo:   postRepo,
		notifier:   notifier,
		store:      store,
	}
}

// Follow creates the directed edge follower -> target. Self-follows and
// duplicate follows are no-ops; only a genuinely new edge notifies.
func (s *SocialService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return nil
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := s.followRepo.Create(ctx, followerID, targetID); err != nil {
		return err
	}
	s.notifier.Notify(ctx, targetID, followerID, models.NotificationTypeFollow, nil)
	return nil
}

// Unfollow removes the follower -> target edge; removing a missing edge
// is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	return s.followRepo.Delete(ctx, followerID, targetID)
}

// RemoveFollower deletes the reverse edge: target stops following userID.
func (s *SocialService) RemoveFollower(ctx context.Context, userID, targetID uint) error {
	return s.followRepo.Delete(ctx, targetID, userID)
}

const profilePostsLimit = 50

// GetProfile composes a user page for viewerID (0 for anonymous).
func (s *SocialService) GetProfile(ctx context.Context, userID, viewerID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if viewerID != 0 && viewerID != userID {
		followed, err := s.followRepo.Exists(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		user.FollowedByViewer = followed
	}

	followers, following, err := s.followRepo.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByUserID(ctx, userID, profilePostsLimit, 0, viewerID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:           user,
		FollowersCount: followers,
		FollowingCount: following,
		Posts:          posts,
	}, nil
}

func (s *SocialService) Followers(ctx context.Context, userID, viewerID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID, viewerID)
}

func (s *SocialService) Following(ctx context.Context, userID, viewerID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID, viewerID)
}

const maxBioLen = 500

// UpdateProfile applies partial updates; nil fields are left untouched.
// Replacing the avatar deletes the old file best-effort.
func (s *SocialService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if len(bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = bio
	}
	if in.Avatar != nil {
		if validation.IsBlank(*in.Avatar) {
			return nil, models.NewValidationError("Avatar filename is required")
		}
		old := user.Avatar
		user.Avatar = *in.Avatar
		if old != "" && old != user.Avatar && s.store != nil {
			s.store.Remove(old)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
