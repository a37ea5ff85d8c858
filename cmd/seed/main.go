// Command main runs the database seeder for Pinboard.
package main

import (
	"flag"
	"log"

	"pinboard/internal/config"
	"pinboard/internal/database"
	"pinboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of users to create (0 uses the plan or default)")
	planPath := flag.String("plan", "", "Path to a YAML seed plan")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	plan := seed.DefaultPlan()
	if *planPath != "" {
		plan, err = seed.LoadPlan(*planPath)
		if err != nil {
			log.Fatalf("Failed to load seed plan: %v", err)
		}
	}
	if *numUsers > 0 {
		plan.Users = *numUsers
	}

	seeder, err := seed.NewSeeder(database.DB)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	if *shouldClean {
		if err := seeder.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seeder.Run(plan); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
