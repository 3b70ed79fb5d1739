package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumPosts       int
	NumComments    int
	FollowsPerUser int
	MaxDays        int
	SkipBcrypt     bool
	ShouldClean    bool
	// FixturePath, when set, loads deterministic records from a YAML file
	// before random generation.
	FixturePath string
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	if opts.FixturePath != "" {
		if err := LoadFixtures(db, opts.FixturePath, opts.SkipBcrypt); err != nil {
			return fmt.Errorf("failed to load fixtures: %w", err)
		}
		log.Printf("Fixtures loaded from %s", opts.FixturePath)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d test users created", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		if len(users) == 0 {
			break
		}
		author := users[rand.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("%d posts created", len(posts))

	comments := 0
	for i := 0; i < opts.NumComments; i++ {
		if len(users) == 0 || len(posts) == 0 {
			break
		}
		author := users[rand.Intn(len(users))]
		post := posts[rand.Intn(len(posts))]
		if _, err := factory.CreateComment(author, post); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		comments++
	}
	log.Printf("%d comments created", comments)

	edges := 0
	for _, follower := range users {
		for i := 0; i < opts.FollowsPerUser; i++ {
			followee := users[rand.Intn(len(users))]
			if err := factory.CreateFollow(follower, followee); err != nil {
				return fmt.Errorf("failed to create follow edge: %w", err)
			}
			edges++
		}
	}
	log.Printf("up to %d follow edges created", edges)

	log.Println("Seeding complete")
	return nil
}

// clearData removes seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{"comments", "follows", "posts", "auth_tokens", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// backdate returns a time n days before now, used by fixtures that want a
// stable relative ordering.
func backdate(days int) time.Time {
	return time.Now().Add(-time.Duration(days) * 24 * time.Hour)
}
