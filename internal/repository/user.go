// Package repository implements the data access layer over MongoDB.
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

// UserRepository defines persistence operations for users.
//
// GetByUsername and GetByEmail return (nil, nil) when no document matches;
// GetByID, Update and Delete return a NOT_FOUND AppError instead.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{users: db.Collection(database.UsersCollection)}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id.Hex())

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.NewNotFoundError("User", id.Hex())
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewValidationError("Username or email already in use")
		}
		return models.NewInternalError(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	var user models.User
	err := r.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id.Hex())
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.NewValidationError("Username or email already in use")
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id.Hex())
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.users.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id.Hex())
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id.Hex())
	return &user, nil
}
