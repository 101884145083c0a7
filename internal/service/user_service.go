// Package service implements the business rules tying users, thoughts and
// reactions together: cascading deletes, friend-graph mutation and the
// creation-time author check.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService provides account lifecycle and friend-graph logic.
type UserService struct {
	userRepo    repository.UserRepository
	thoughtRepo repository.ThoughtRepository
}

// CreateUserInput holds the fields accepted on user creation.
type CreateUserInput struct {
	Username string
	Email    string
}

// UpdateUserInput holds the optional fields of a partial user update. Nil
// fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
}

// DeleteUserResult reports the outcome of a cascading user delete.
type DeleteUserResult struct {
	User            *models.User
	ThoughtsDeleted int64
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, thoughtRepo repository.ThoughtRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		thoughtRepo: thoughtRepo,
	}
}

// ListUsers returns all users. Thought id lists are not derived here; they
// are populated on single-user reads only.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetUserByID returns the user with its thought id list derived from the
// thoughts collection, the single source of truth for authorship.
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	thoughts, err := s.thoughtRepo.ListByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	user.Thoughts = make([]primitive.ObjectID, 0, len(thoughts))
	for _, t := range thoughts {
		user.Thoughts = append(user.Thoughts, t.ID)
	}
	return user, nil
}

// CreateUser validates and persists a new user. Username and email must be
// unique; the pre-check here gives a clean message, the unique indexes stay
// authoritative under races.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Friends:   []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByUsername(ctx, user.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already in use")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already in use")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Thoughts = []primitive.ObjectID{}
	return user, nil
}

// UpdateUser applies a partial merge of the provided fields, re-validating
// each one.
func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, in UpdateUserInput) (*models.User, error) {
	set := bson.M{}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, models.NewValidationError("Username is required")
		}
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, models.NewValidationError("Username already in use")
		}
		set["username"] = username
	}

	if in.Email != nil {
		if err := models.ValidateEmail(*in.Email); err != nil {
			return nil, err
		}
		existing, err := s.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, models.NewValidationError("Email already in use")
		}
		set["email"] = *in.Email
	}

	if len(set) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}
	set["updatedAt"] = time.Now().UTC()

	return s.userRepo.Update(ctx, id, set)
}

// DeleteUser removes the user and bulk-deletes every thought authored under
// the removed username. When the id matches no user, no thought is touched.
// The two deletes are not atomic: a failure after the user delete leaves the
// thoughts orphaned.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) (*DeleteUserResult, error) {
	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.thoughtRepo.DeleteByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	return &DeleteUserResult{User: user, ThoughtsDeleted: deleted}, nil
}

// AddFriend appends friendID to the user's friends set. The relation is
// one-directional: the friend's own list is not touched.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	if userID == friendID {
		return nil, models.NewValidationError("Cannot add yourself as a friend")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireFriendExists(ctx, friendID); err != nil {
		return nil, err
	}

	if user.HasFriend(friendID) {
		return nil, models.NewConflictError("Friend already added")
	}

	friends := append(user.Friends, friendID)
	return s.userRepo.Update(ctx, userID, bson.M{
		"friends":   friends,
		"updatedAt": time.Now().UTC(),
	})
}

// RemoveFriend removes friendID from the user's friends set, mirroring
// AddFriend's checks.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireFriendExists(ctx, friendID); err != nil {
		return nil, err
	}

	idx := -1
	for i, f := range user.Friends {
		if f == friendID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, models.NewConflictError("Friend not in friends list")
	}

	friends := append(user.Friends[:idx:idx], user.Friends[idx+1:]...)
	return s.userRepo.Update(ctx, userID, bson.M{
		"friends":   friends,
		"updatedAt": time.Now().UTC(),
	})
}

// requireFriendExists resolves friendID, renaming the not-found resource so
// the caller can tell which side of the pair is missing.
func (s *UserService) requireFriendExists(ctx context.Context, friendID primitive.ObjectID) error {
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return models.NewNotFoundError("Friend", friendID.Hex())
		}
		return err
	}
	return nil
}
