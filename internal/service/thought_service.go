package service

import (
	"context"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ThoughtService provides thought lifecycle and reaction management logic.
type ThoughtService struct {
	thoughtRepo repository.ThoughtRepository
	userRepo    repository.UserRepository
}

// CreateThoughtInput holds the fields accepted on thought creation.
type CreateThoughtInput struct {
	ThoughtText string
	Username    string
	CreatedAt   *time.Time
}

// UpdateThoughtInput holds the optional fields of a partial thought update.
type UpdateThoughtInput struct {
	ThoughtText *string
	Username    *string
}

// AddReactionInput holds the fields accepted when reacting to a thought.
type AddReactionInput struct {
	ReactionBody string
	Username     string
}

// NewThoughtService returns a new ThoughtService.
func NewThoughtService(thoughtRepo repository.ThoughtRepository, userRepo repository.UserRepository) *ThoughtService {
	return &ThoughtService{
		thoughtRepo: thoughtRepo,
		userRepo:    userRepo,
	}
}

// ListThoughts returns all thoughts.
func (s *ThoughtService) ListThoughts(ctx context.Context) ([]models.Thought, error) {
	return s.thoughtRepo.List(ctx)
}

// GetThoughtByID returns a single thought.
func (s *ThoughtService) GetThoughtByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	return s.thoughtRepo.GetByID(ctx, id)
}

// CreateThought validates and persists a new thought. The authoring username
// must resolve to an existing user; when it does not, nothing is persisted.
func (s *ThoughtService) CreateThought(ctx context.Context, in CreateThoughtInput) (*models.Thought, error) {
	thought := &models.Thought{
		ThoughtText: in.ThoughtText,
		Username:    in.Username,
		CreatedAt:   time.Now().UTC(),
		Reactions:   []models.Reaction{},
	}
	if in.CreatedAt != nil {
		thought.CreatedAt = *in.CreatedAt
	}
	if err := thought.Validate(); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", in.Username)
	}

	if err := s.thoughtRepo.Create(ctx, thought); err != nil {
		return nil, err
	}
	return thought, nil
}

// UpdateThought applies a partial merge of the provided fields. The author
// existence check is a creation-time rule and is not repeated here.
func (s *ThoughtService) UpdateThought(ctx context.Context, id primitive.ObjectID, in UpdateThoughtInput) (*models.Thought, error) {
	set := bson.M{}

	if in.ThoughtText != nil {
		if err := models.ValidateBody("Thought text", *in.ThoughtText); err != nil {
			return nil, err
		}
		set["thoughtText"] = *in.ThoughtText
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, models.NewValidationError("Username is required")
		}
		set["username"] = username
	}

	if len(set) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	return s.thoughtRepo.Update(ctx, id, set)
}

// DeleteThought removes a single thought. Thought deletion is independent of
// the author's lifecycle.
func (s *ThoughtService) DeleteThought(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	return s.thoughtRepo.Delete(ctx, id)
}

// AddReaction appends a reaction with a freshly generated id and timestamp,
// then persists the whole reaction sequence. The reacting username is not
// checked for existence.
func (s *ThoughtService) AddReaction(ctx context.Context, thoughtID primitive.ObjectID, in AddReactionInput) (*models.Thought, error) {
	reaction := models.Reaction{
		ReactionID:   primitive.NewObjectID(),
		ReactionBody: in.ReactionBody,
		Username:     in.Username,
		CreatedAt:    time.Now().UTC(),
	}
	if err := reaction.Validate(); err != nil {
		return nil, err
	}

	thought, err := s.thoughtRepo.GetByID(ctx, thoughtID)
	if err != nil {
		return nil, err
	}

	reactions := append(thought.Reactions, reaction)
	return s.thoughtRepo.Update(ctx, thoughtID, bson.M{"reactions": reactions})
}

// RemoveReaction removes the reaction with the given id from the thought's
// sequence, preserving the order of the rest.
func (s *ThoughtService) RemoveReaction(ctx context.Context, thoughtID, reactionID primitive.ObjectID) (*models.Thought, error) {
	thought, err := s.thoughtRepo.GetByID(ctx, thoughtID)
	if err != nil {
		return nil, err
	}

	idx := thought.FindReaction(reactionID)
	if idx < 0 {
		return nil, models.NewNotFoundError("Reaction", reactionID.Hex())
	}

	reactions := append(thought.Reactions[:idx:idx], thought.Reactions[idx+1:]...)
	return s.thoughtRepo.Update(ctx, thoughtID, bson.M{"reactions": reactions})
}
