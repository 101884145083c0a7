package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/database"
	"ripple/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ThoughtRepository defines persistence operations for thoughts and their
// embedded reactions. Reactions are never stored outside a thought document,
// so every reaction mutation goes through Update on the owning thought.
type ThoughtRepository interface {
	List(ctx context.Context) ([]models.Thought, error)
	ListByUsername(ctx context.Context, username string) ([]models.Thought, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	Create(ctx context.Context, thought *models.Thought) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Thought, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}

type thoughtRepository struct {
	thoughts *mongo.Collection
}

// NewThoughtRepository returns a new ThoughtRepository implementation.
func NewThoughtRepository(db *mongo.Database) ThoughtRepository {
	return &thoughtRepository{thoughts: db.Collection(database.ThoughtsCollection)}
}

func (r *thoughtRepository) List(ctx context.Context) ([]models.Thought, error) {
	return r.find(ctx, bson.M{})
}

func (r *thoughtRepository) ListByUsername(ctx context.Context, username string) ([]models.Thought, error) {
	return r.find(ctx, bson.M{"username": username})
}

func (r *thoughtRepository) find(ctx context.Context, filter bson.M) ([]models.Thought, error) {
	cur, err := r.thoughts.Find(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	thoughts := []models.Thought{}
	if err := cur.All(ctx, &thoughts); err != nil {
		return nil, models.NewInternalError(err)
	}
	return thoughts, nil
}

func (r *thoughtRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	var thought models.Thought
	key := cache.ThoughtKey(id.Hex())

	err := cache.Aside(ctx, key, &thought, cache.ThoughtTTL, func() error {
		if err := r.thoughts.FindOne(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.NewNotFoundError("Thought", id.Hex())
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &thought, nil
}

func (r *thoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	res, err := r.thoughts.InsertOne(ctx, thought)
	if err != nil {
		return models.NewInternalError(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		thought.ID = id
	}
	return nil
}

func (r *thoughtRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Thought, error) {
	var thought models.Thought
	err := r.thoughts.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&thought)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("Thought", id.Hex())
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateThought(ctx, id.Hex())
	return &thought, nil
}

func (r *thoughtRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	var thought models.Thought
	if err := r.thoughts.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("Thought", id.Hex())
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateThought(ctx, id.Hex())
	return &thought, nil
}

// DeleteByUsername bulk-deletes every thought authored under the given
// username and returns the removed count. The affected ids are collected
// first so their cache entries can be dropped; the delete itself is a single
// DeleteMany.
func (r *thoughtRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	filter := bson.M{"username": username}

	cur, err := r.thoughts.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	var ids []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &ids); err != nil {
		return 0, models.NewInternalError(err)
	}

	res, err := r.thoughts.DeleteMany(ctx, filter)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	for _, id := range ids {
		cache.InvalidateThought(ctx, id.ID.Hex())
	}
	return res.DeletedCount, nil
}
