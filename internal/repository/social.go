// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow graph operations.
// Edges are directed: Follow(a, b) means a follows b.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID uint) error
	Delete(ctx context.Context, followerID, followingID uint) error
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID, viewerID uint) ([]*models.User, error)
	Following(ctx context.Context, userID, viewerID uint) ([]*models.User, error)
	Counts(ctx context.Context, userID uint) (followers int64, following int64, err error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge idempotently; a duplicate follow is a no-op.
func (r *followRepository) Create(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO follows (follower_id, following_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT (follower_id, following_id) DO NOTHING",
		followerID, followingID,
	).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Followers returns users following userID, each annotated with whether the
// viewer follows them back.
func (r *followRepository) Followers(ctx context.Context, userID, viewerID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*, EXISTS(SELECT 1 FROM follows f2 WHERE f2.follower_id = ? AND f2.following_id = users.id) AS followed_by_viewer", viewerID).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// Following returns users that userID follows, annotated the same way.
func (r *followRepository) Following(ctx context.Context, userID, viewerID uint) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*, EXISTS(SELECT 1 FROM follows f2 WHERE f2.follower_id = ? AND f2.following_id = users.id) AS followed_by_viewer", viewerID).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *followRepository) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
