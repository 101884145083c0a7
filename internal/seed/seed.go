package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Options configuration for the seeder
type Options struct {
	NumUsers               int
	MaxThoughtsPerUser     int
	MaxReactionsPerThought int
	MaxFriendsPerUser      int
	Clean                  bool
}

func (o *Options) applyDefaults() {
	if o.NumUsers <= 0 {
		o.NumUsers = 25
	}
	if o.MaxThoughtsPerUser <= 0 {
		o.MaxThoughtsPerUser = 4
	}
	if o.MaxReactionsPerThought <= 0 {
		o.MaxReactionsPerThought = 3
	}
	if o.MaxFriendsPerUser <= 0 {
		o.MaxFriendsPerUser = 5
	}
}

// Run populates the database with generated users, thoughts, reactions and
// friend edges. All writes go through the services so seeded data obeys the
// same rules as API traffic.
func Run(ctx context.Context, db *mongo.Database, opts Options) error {
	opts.applyDefaults()

	if opts.Clean {
		if err := Clean(ctx, db); err != nil {
			return err
		}
	}

	userRepo := repository.NewUserRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)
	userSvc := service.NewUserService(userRepo, thoughtRepo)
	thoughtSvc := service.NewThoughtService(thoughtRepo, userRepo)

	factory := NewFactory(time.Now().UnixNano())

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := userSvc.CreateUser(ctx, factory.BuildUser())
		if err != nil {
			// Generated usernames can collide; skip and move on.
			log.Printf("seed: skipping user: %v", err)
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("seed: no users created")
	}

	var thoughts int
	for _, user := range users {
		n := factory.rng.Intn(opts.MaxThoughtsPerUser + 1)
		for i := 0; i < n; i++ {
			thought, err := thoughtSvc.CreateThought(ctx, factory.BuildThought(user.Username, 90))
			if err != nil {
				return err
			}
			thoughts++

			m := factory.rng.Intn(opts.MaxReactionsPerThought + 1)
			for j := 0; j < m; j++ {
				reactor := users[factory.rng.Intn(len(users))]
				if _, err := thoughtSvc.AddReaction(ctx, thought.ID, factory.BuildReaction(reactor.Username)); err != nil {
					return err
				}
			}
		}
	}

	var edges int
	for _, user := range users {
		n := factory.rng.Intn(opts.MaxFriendsPerUser + 1)
		for i := 0; i < n; i++ {
			friend := users[factory.rng.Intn(len(users))]
			if friend.ID == user.ID {
				continue
			}
			if _, err := userSvc.AddFriend(ctx, user.ID, friend.ID); err != nil {
				// Duplicate picks are expected; anything else is fatal.
				var appErr *models.AppError
				if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
					continue
				}
				return err
			}
			edges++
		}
	}

	log.Printf("seed: created %d users, %d thoughts, %d friend edges", len(users), thoughts, edges)
	return nil
}

// Clean removes all documents from both collections.
func Clean(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{database.UsersCollection, database.ThoughtsCollection} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("seed: clean %s: %w", name, err)
		}
	}
	return nil
}
