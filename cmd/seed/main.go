// Command main runs the database seeder for Ripple.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	maxThoughts := flag.Int("thoughts", 4, "Maximum thoughts per user")
	maxReactions := flag.Int("reactions", 3, "Maximum reactions per thought")
	maxFriends := flag.Int("friends", 5, "Maximum friend edges per user")
	clean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, clean=%v\n", *numUsers, *clean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := seed.Run(ctx, db, seed.Options{
		NumUsers:               *numUsers,
		MaxThoughtsPerUser:     *maxThoughts,
		MaxReactionsPerThought: *maxReactions,
		MaxFriendsPerUser:      *maxFriends,
		Clean:                  *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if err := database.Disconnect(ctx); err != nil {
		log.Printf("Disconnect error: %v", err)
	}
	log.Println("Seeding complete")
}
