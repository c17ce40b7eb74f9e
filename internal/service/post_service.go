package service

import (
	"context"
	"strings"

	"glimpse/internal/media"
	"glimpse/internal/models"
	"glimpse/internal/repository"
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	notifier    *NotificationService
	store       *media.Store
}

// CreatePostMediaInput describes one already-stored media file.
type CreatePostMediaInput struct {
	Filename  string
	MediaType string
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Media   []CreatePostMediaInput
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	notifier *NotificationService,
	store *media.Store,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
		store:       store,
	}
}

const maxPostContentLen = 2200

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Content) == "" && len(in.Media) == 0 {
		return nil, models.NewValidationError("Post needs a caption or at least one media file")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}
	if len(in.Media) > media.MaxPostMediaFiles {
		return nil, models.NewValidationError("Too many media files (max 10)")
	}

	post := &models.Post{
		Content: strings.TrimSpace(in.Content),
		UserID:  in.UserID,
	}
	for i, m := range in.Media {
		post.Media = append(post.Media, models.PostMedia{
			Filename:  m.Filename,
			MediaType: m.MediaType,
			Position:  i,
		})
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// Feed returns the viewer's home timeline: own posts plus followed users'
// posts, newest first.
func (s *PostService) Feed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.Feed(ctx, viewerID, limit, offset)
}

// GetPost is public: currentUserID 0 means an anonymous viewer, whose
// liked flag is always false.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}

	post.Content = strings.TrimSpace(in.Content)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and its media rows, then cleans up the
// stored files. File removal is best-effort: the row delete has already
// committed and a stray file on disk is preferable to a ghost post.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	filenames, err := s.postRepo.MediaFilenames(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	if s.store != nil {
		s.store.RemoveAll(filenames)
	}
	return nil
}

// ToggleLike likes the post if the user has not liked it, unlikes otherwise.
// A new like notifies the post owner; an unlike never reverses that.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		s.notifier.Notify(ctx, post.UserID, userID, models.NotificationTypeLike, &postID)
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

func (s *PostService) AddComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: strings.TrimSpace(content),
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, post.UserID, userID, models.NotificationTypeComment, &postID)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *PostService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
