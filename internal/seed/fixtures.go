package seed

import (
	"fmt"
	"os"

	"murmur/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixtures is the YAML document shape for deterministic seed data. Usernames
// are the join keys between sections, so fixtures stay readable without
// numeric IDs.
type Fixtures struct {
	Users []struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Bio      string `yaml:"bio"`
		IsAdmin  bool   `yaml:"is_admin"`
	} `yaml:"users"`
	Posts []struct {
		Author          string `yaml:"author"`
		Title           string `yaml:"title"`
		Content         string `yaml:"content"`
		PublicationYear int    `yaml:"publication_year"`
		DaysAgo         int    `yaml:"days_ago"`
	} `yaml:"posts"`
	Follows []struct {
		Follower string `yaml:"follower"`
		Followee string `yaml:"followee"`
	} `yaml:"follows"`
}

// LoadFixtures reads a YAML fixture file and persists its records.
func LoadFixtures(db *gorm.DB, path string, skipBcrypt bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading fixture file: %w", err)
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return fmt.Errorf("parsing fixture file: %w", err)
	}

	usersByName := make(map[string]*models.User, len(fixtures.Users))
	for _, fu := range fixtures.Users {
		password := fu.Password
		if password == "" {
			password = "password123"
		}
		if !skipBcrypt {
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			password = string(hashed)
		}

		user := &models.User{
			Username: fu.Username,
			Email:    fu.Email,
			Password: password,
			Bio:      fu.Bio,
			IsAdmin:  fu.IsAdmin,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("creating fixture user %q: %w", fu.Username, err)
		}
		usersByName[fu.Username] = user
	}

	for _, fp := range fixtures.Posts {
		author, ok := usersByName[fp.Author]
		if !ok {
			return fmt.Errorf("fixture post %q references unknown user %q", fp.Title, fp.Author)
		}
		post := &models.Post{
			Title:           fp.Title,
			Content:         fp.Content,
			PublicationYear: fp.PublicationYear,
			UserID:          author.ID,
			CreatedAt:       backdate(fp.DaysAgo),
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("creating fixture post %q: %w", fp.Title, err)
		}
	}

	for _, ff := range fixtures.Follows {
		follower, ok := usersByName[ff.Follower]
		if !ok {
			return fmt.Errorf("fixture follow references unknown user %q", ff.Follower)
		}
		followee, ok := usersByName[ff.Followee]
		if !ok {
			return fmt.Errorf("fixture follow references unknown user %q", ff.Followee)
		}
		edge := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
		if err := db.Create(edge).Error; err != nil && !isDuplicate(err) {
			return fmt.Errorf("creating fixture follow %s -> %s: %w", ff.Follower, ff.Followee, err)
		}
	}

	return nil
}
