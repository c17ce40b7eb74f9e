package service

import (
	"context"
	"errors"
	"time"

	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// ErrStoryIndexOutOfRange signals a request for a story position past the
// end of a user's active stories (or a user with none).
var ErrStoryIndexOutOfRange = errors.New("story index out of range")

type StoryService struct {
	storyRepo repository.StoryRepository
	now       func() time.Time
}

type CreateStoryInput struct {
	UserID    uint
	Media     string
	MediaType string
}

// StoryPage is one step of the sequential story viewer.
type StoryPage struct {
	Story *models.Story `json:"story"`
	Index int           `json:"index"`
	Total int           `json:"total"`
}

func NewStoryService(storyRepo repository.StoryRepository) *StoryService {
	return &StoryService{storyRepo: storyRepo, now: time.Now}
}

func (s *StoryService) CreateStory(ctx context.Context, in CreateStoryInput) (*models.Story, error) {
	if in.Media == "" {
		return nil, models.NewValidationError("Story media is required")
	}
	now := s.now()
	story := &models.Story{
		UserID:    in.UserID,
		Media:     in.Media,
		MediaType: in.MediaType,
		ExpiresAt: now.Add(models.StoryTTL),
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Bubbles returns the story tray: one entry per user the viewer follows
// (plus the viewer) who has at least one active story.
func (s *StoryService) Bubbles(ctx context.Context, viewerID uint) ([]*models.Story, error) {
	return s.storyRepo.Bubbles(ctx, viewerID, s.now())
}

// ViewStory returns the story at position index within ownerID's active
// stories (oldest first). An out-of-range index returns
// ErrStoryIndexOutOfRange. Opening someone else's story records a view.
func (s *StoryService) ViewStory(ctx context.Context, viewerID, ownerID uint, index int) (*StoryPage, error) {
	now := s.now()
	stories, err := s.storyRepo.ActiveByUser(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(stories) {
		return nil, ErrStoryIndexOutOfRange
	}

	story := stories[index]
	if viewerID != ownerID {
		if err := s.storyRepo.RecordView(ctx, story.ID, viewerID, now); err != nil {
			return nil, err
		}
		observability.StoryViewsRecorded.Inc()
	}

	return &StoryPage{Story: story, Index: index, Total: len(stories)}, nil
}

// OwnerStories returns the owner's active stories annotated with distinct
// view counts. View counts are never exposed to anyone else.
func (s *StoryService) OwnerStories(ctx context.Context, ownerID uint) ([]*models.Story, error) {
	stories, err := s.storyRepo.ActiveByUser(ctx, ownerID, s.now())
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(stories))
	for i, st := range stories {
		ids[i] = st.ID
	}
	counts, err := s.storyRepo.ViewCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, st := range stories {
		st.ViewsCount = counts[st.ID]
	}
	return stories, nil
}

// React records userID's reaction to an active story. Reacting again
// replaces the prior symbol.
func (s *StoryService) React(ctx context.Context, userID, storyID uint, symbol string) error {
	if !models.IsValidStoryReaction(symbol) {
		return models.NewValidationError("Invalid reaction")
	}
	if _, err := s.storyRepo.GetByID(ctx, storyID, s.now()); err != nil {
		return err
	}
	return s.storyRepo.UpsertReaction(ctx, storyID, userID, symbol)
}

// Reactions lists a story's reactions; owner-only.
func (s *StoryService) Reactions(ctx context.Context, userID, storyID uint) ([]*models.StoryReaction, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID, s.now())
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, models.NewForbiddenError("Only the story owner can see reactions")
	}
	return s.storyRepo.Reactions(ctx, storyID)
}

// Views lists who viewed a story; owner-only.
func (s *StoryService) Views(ctx context.Context, userID, storyID uint) ([]*models.StoryView, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID, s.now())
	if err != nil {
		return nil, err
	}
	if story.UserID != userID {
		return nil, models.NewForbiddenError("Only the story owner can see views")
	}
	return s.storyRepo.Views(ctx, storyID)
}
