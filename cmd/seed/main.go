// Command main runs the database seeder for Real.me.
package main

import (
	"flag"
	"log"

	"realme/internal/config"
	"realme/internal/database"
	"realme/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numCommunities := flag.Int("communities", 12, "Number of communities to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d communities, %d posts, clean=%v\n",
		*numUsers, *numCommunities, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		Users:       *numUsers,
		Communities: *numCommunities,
		Posts:       *numPosts,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	profiles, err := s.SeedUsers()
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := s.SeedAdmin(profiles); err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}
	communities, err := s.SeedCommunities(profiles)
	if err != nil {
		log.Fatalf("Community seeding failed: %v", err)
	}
	if err := s.SeedContent(communities); err != nil {
		log.Fatalf("Content seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
