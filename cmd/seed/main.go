// Command main runs the database seeder for Murmur.
package main

import (
	"flag"
	"log"

	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	followsPerUser := flag.Int("follows", 5, "Follow edges to attempt per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "Optional YAML fixture file loaded before random data")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, %d comments, clean=%v\n",
		*numUsers, *numPosts, *numComments, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(db, seed.Options{
		NumUsers:       *numUsers,
		NumPosts:       *numPosts,
		NumComments:    *numComments,
		FollowsPerUser: *followsPerUser,
		ShouldClean:    *shouldClean,
		FixturePath:    *fixtures,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Test users have the password: password123")
}
