package seed

import (
	"fmt"
	"log/slog"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	MaxUsers    int
	ShouldClean bool
}

// Seeder populates the database with demo users and tagged posts.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll wipes seeded data. Order matters: the join table first, then
// posts and tags, then users.
func (s *Seeder) ClearAll() error {
	if err := s.db.Exec("DELETE FROM post_tags").Error; err != nil {
		return fmt.Errorf("clearing post_tags: %w", err)
	}
	for _, model := range []any{&models.Post{}, &models.Tag{}, &models.User{}} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	slog.Info("database cleared")
	return nil
}

// Run seeds users up to the registration cap, then posts authored by
// them.
func (s *Seeder) Run(opts Options) error {
	numUsers := opts.NumUsers
	if opts.MaxUsers > 0 && numUsers > opts.MaxUsers {
		slog.Warn("user count exceeds registration cap, truncating",
			"requested", numUsers, "cap", opts.MaxUsers)
		numUsers = opts.MaxUsers
	}

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user: %w", err)
		}
		users = append(users, user)
	}
	slog.Info("seeded users", "count", len(users))

	if len(users) == 0 {
		return nil
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[i%len(users)]
		if _, err := s.factory.CreatePost(author.Name); err != nil {
			return fmt.Errorf("seeding post: %w", err)
		}
	}
	slog.Info("seeded posts", "count", opts.NumPosts)
	return nil
}
