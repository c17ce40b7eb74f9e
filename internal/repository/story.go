// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"glimpse/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoryRepository defines the interface for story data operations.
// Every read filters on expires_at > now; expired stories are never purged.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uint, now time.Time) (*models.Story, error)
	ActiveByUser(ctx context.Context, userID uint, now time.Time) ([]*models.Story, error)
	Bubbles(ctx context.Context, viewerID uint, now time.Time) ([]*models.Story, error)
	RecordView(ctx context.Context, storyID, viewerID uint, at time.Time) error
	ViewCounts(ctx context.Context, storyIDs []uint) (map[uint]int, error)
	Views(ctx context.Context, storyID uint) ([]*models.StoryView, error)
	UpsertReaction(ctx context.Context, storyID, userID uint, symbol string) error
	Reactions(ctx context.Context, storyID uint) ([]*models.StoryReaction, error)
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

// GetByID returns an active story; an expired one is reported as not found.
func (r *storyRepository) GetByID(ctx context.Context, id uint, now time.Time) (*models.Story, error) {
	var story models.Story
	err := r.db.WithContext(ctx).
		Where("expires_at > ?", now).
		Preload("User").
		First(&story, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Story", id)
		}
		return nil, err
	}
	return &story, nil
}

// ActiveByUser returns a user's active stories oldest first, the order the
// sequential viewer steps through them.
func (r *storyRepository) ActiveByUser(ctx context.Context, userID uint, now time.Time) ([]*models.Story, error) {
	var stories []*models.Story
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Preload("User").
		Order("created_at ASC").
		Find(&stories).Error
	return stories, err
}

// Bubbles returns one story per user the viewer follows (plus the viewer),
// the active story with the latest created_at representing the bubble.
func (r *storyRepository) Bubbles(ctx context.Context, viewerID uint, now time.Time) ([]*models.Story, error) {
	var stories []*models.Story
	followed := r.db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", viewerID)

	err := r.db.WithContext(ctx).
		Where("stories.expires_at > ?", now).
		Where("stories.user_id = ? OR stories.user_id IN (?)", viewerID, followed).
		Where(`stories.created_at = (
			SELECT MAX(s2.created_at) FROM stories s2
			WHERE s2.user_id = stories.user_id AND s2.expires_at > ? AND s2.deleted_at IS NULL)`, now).
		Preload("User").
		Order("stories.created_at DESC").
		Find(&stories).Error
	return stories, err
}

// RecordView upserts the (story, viewer) pair; re-viewing refreshes the
// timestamp without duplicating the row.
func (r *storyRepository) RecordView(ctx context.Context, storyID, viewerID uint, at time.Time) error {
	view := models.StoryView{
		StoryID:  storyID,
		ViewerID: viewerID,
		ViewedAt: at,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}, {Name: "viewer_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"viewed_at": at}),
	}).Create(&view).Error
}

// ViewCounts returns the distinct-viewer view count per story ID.
func (r *storyRepository) ViewCounts(ctx context.Context, storyIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(storyIDs))
	if len(storyIDs) == 0 {
		return counts, nil
	}

	type row struct {
		StoryID uint
		Count   int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.StoryView{}).
		Select("story_id, COUNT(*) as count").
		Where("story_id IN ?", storyIDs).
		Group("story_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rr := range rows {
		counts[rr.StoryID] = rr.Count
	}
	return counts, nil
}

func (r *storyRepository) Views(ctx context.Context, storyID uint) ([]*models.StoryView, error) {
	var views []*models.StoryView
	err := r.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Preload("Viewer").
		Order("viewed_at DESC").
		Find(&views).Error
	return views, err
}

// UpsertReaction keeps one reaction per (story, user); a repeat reaction
// overwrites the prior symbol.
func (r *storyRepository) UpsertReaction(ctx context.Context, storyID, userID uint, symbol string) error {
	reaction := models.StoryReaction{
		StoryID:  storyID,
		UserID:   userID,
		Reaction: symbol,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction", "updated_at"}),
	}).Create(&reaction).Error
}

func (r *storyRepository) Reactions(ctx context.Context, storyID uint) ([]*models.StoryReaction, error) {
	var reactions []*models.StoryReaction
	err := r.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Preload("User").
		Order("updated_at DESC").
		Find(&reactions).Error
	return reactions, err
}
