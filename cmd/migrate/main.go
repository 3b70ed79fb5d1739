// Command migrate applies the application schema to the configured database.
// Production deployments run this explicitly; development servers automigrate
// on boot.
package main

import (
	"log"

	"murmur/internal/config"
	"murmur/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.Models()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration complete")
}
