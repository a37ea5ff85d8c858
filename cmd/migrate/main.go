// Command migrate applies the schema explicitly. Production connections do
// not auto-migrate, so deployments run this before rolling the server.
package main

import (
	"log"

	"pinboard/internal/config"
	"pinboard/internal/database"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration complete")
}
