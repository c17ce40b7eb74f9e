// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"glimpse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp up to maxDays in the past for a realistic
// created_at spread.
func (f *Factory) pastTime(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 30
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("avatar-%s.jpg", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post for the user with 1-3 media rows.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Content:   gofakeit.Sentence(8),
		UserID:    user.ID,
		CreatedAt: f.pastTime(30),
	}
	mediaCount := 1 + f.rand.Intn(3)
	for i := 0; i < mediaCount; i++ {
		mediaType := models.MediaTypeImage
		ext := ".jpg"
		if f.rand.Intn(5) == 0 {
			mediaType = models.MediaTypeVideo
			ext = ".mp4"
		}
		post.Media = append(post.Media, models.PostMedia{
			Filename:  gofakeit.UUID() + ext,
			MediaType: mediaType,
			Position:  i,
		})
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateStory persists an active story for the user.
func (f *Factory) CreateStory(user *models.User, overrides ...func(*models.Story)) (*models.Story, error) {
	created := time.Now().Add(-time.Duration(f.rand.Intn(20)) * time.Hour)
	story := &models.Story{
		UserID:    user.ID,
		Media:     gofakeit.UUID() + ".jpg",
		MediaType: models.MediaTypeImage,
		CreatedAt: created,
		ExpiresAt: created.Add(models.StoryTTL),
	}
	for _, override := range overrides {
		override(story)
	}
	if err := f.db.Create(story).Error; err != nil {
		return nil, err
	}
	return story, nil
}

// CreateComment persists a comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(6),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records a like idempotently.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Exec(
		"INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT (user_id, post_id) DO NOTHING",
		user.ID, post.ID,
	).Error
}

// CreateFollow records a follow edge idempotently.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	if follower.ID == following.ID {
		return nil
	}
	return f.db.Exec(
		"INSERT INTO follows (follower_id, following_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT (follower_id, following_id) DO NOTHING",
		follower.ID, following.ID,
	).Error
}

// CreateMessage persists a direct message between two users.
func (f *Factory) CreateMessage(sender, receiver *models.User) (*models.Message, error) {
	message := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    gofakeit.Sentence(7),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
