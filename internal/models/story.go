// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// StoryTTL is how long a story stays active after creation.
const StoryTTL = 24 * time.Hour

// Story represents an ephemeral media post that expires 24h after creation.
// A story is active iff ExpiresAt > now; expired stories are filtered at
// query time, never purged.
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Media     string    `gorm:"not null" json:"media"`
	MediaType string    `gorm:"type:varchar(10);not null" json:"media_type"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	// ViewsCount is populated only for the story owner (computed)
	ViewsCount int            `gorm:"->" json:"views_count,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsActive reports whether the story is still visible.
func (s *Story) IsActive(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// StoryView records that a viewer opened a story. Re-viewing refreshes
// ViewedAt; the (StoryID, ViewerID) pair is unique.
type StoryView struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	StoryID  uint      `gorm:"not null;uniqueIndex:idx_story_viewer" json:"story_id"`
	ViewerID uint      `gorm:"not null;uniqueIndex:idx_story_viewer" json:"viewer_id"`
	Viewer   User      `gorm:"foreignKey:ViewerID" json:"viewer"`
	ViewedAt time.Time `json:"viewed_at"`
}

// StoryReactions allowed symbols. Reacting again overwrites the prior symbol.
var StoryReactionSymbols = []string{"❤️", "🔥", "😂"}

// IsValidStoryReaction reports whether symbol is in the allowed reaction set.
func IsValidStoryReaction(symbol string) bool {
	for _, s := range StoryReactionSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// StoryReaction is a single user's reaction to a story; one row per
// (StoryID, UserID), latest symbol wins.
type StoryReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoryID   uint      `gorm:"not null;uniqueIndex:idx_story_reactor" json:"story_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_story_reactor" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Reaction  string    `gorm:"type:varchar(10);not null" json:"reaction"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
