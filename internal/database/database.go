// Package database manages the MongoDB connection for the application.
package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ripple/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection    = "users"
	ThoughtsCollection = "thoughts"
)

var client *mongo.Client

// Connect establishes the MongoDB connection, verifies it with a ping, and
// returns a handle to the application database with its indexes in place.
func Connect(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := c.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	client = c
	log.Printf("MongoDB connected (database %q)", cfg.MongoDB)

	db := c.Database(cfg.MongoDB)
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureIndexes creates the unique indexes backing username and email
// uniqueness on the users collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// Ping verifies the connection; used by the readiness check.
func Ping(ctx context.Context) error {
	if client == nil {
		return errors.New("mongo client not initialized")
	}
	return client.Ping(ctx, nil)
}

// Disconnect closes the MongoDB connection.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
