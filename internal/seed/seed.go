package seed

import (
	"log"
	"math/rand"
	"time"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo users, content, and engagement.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Table order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{
		"story_reactions", "story_views", "stories",
		"notifications", "messages",
		"likes", "comments", "post_media", "posts",
		"follows", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSocialMesh creates users and a follow graph between them. Each user
// follows roughly a quarter of the others.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	log.Printf("Seeding %d users...", numUsers)
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Println("Seeding follow graph...")
	for _, follower := range users {
		for _, following := range users {
			if follower.ID == following.ID {
				continue
			}
			if s.rand.Intn(4) == 0 {
				if err := s.factory.CreateFollow(follower, following); err != nil {
					return nil, err
				}
			}
		}
	}
	return users, nil
}

// SeedEngagement creates posts, comments, likes, stories, and messages for
// the given users.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) error {
	if len(users) == 0 {
		return nil
	}

	log.Printf("Seeding %d posts with engagement...", numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rand.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return err
		}

		// Some likes and comments from random users.
		for j := 0; j < s.rand.Intn(8); j++ {
			liker := users[s.rand.Intn(len(users))]
			if err := s.factory.CreateLike(liker, post); err != nil {
				return err
			}
		}
		for j := 0; j < s.rand.Intn(4); j++ {
			commenter := users[s.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}
	}

	log.Println("Seeding stories...")
	for _, user := range users {
		if s.rand.Intn(3) != 0 {
			continue
		}
		for j := 0; j < 1+s.rand.Intn(3); j++ {
			if _, err := s.factory.CreateStory(user); err != nil {
				return err
			}
		}
	}

	log.Println("Seeding direct messages...")
	for i := 0; i < len(users)*2; i++ {
		sender := users[s.rand.Intn(len(users))]
		receiver := users[s.rand.Intn(len(users))]
		if sender.ID == receiver.ID {
			continue
		}
		if _, err := s.factory.CreateMessage(sender, receiver); err != nil {
			return err
		}
	}

	return nil
}
