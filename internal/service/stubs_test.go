package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepoStub struct {
	listFn          func(context.Context) ([]models.User, error)
	getByIDFn       func(context.Context, primitive.ObjectID) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, primitive.ObjectID, bson.M) (*models.User, error)
	deleteFn        func(context.Context, primitive.ObjectID) (*models.User, error)
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	return s.updateFn(ctx, id, set)
}
func (s *userRepoStub) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.deleteFn(ctx, id)
}

// noopUserRepo returns a stub whose defaults behave like an empty collection.
func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn: func(context.Context) ([]models.User, error) {
			return []models.User{}, nil
		},
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id.Hex())
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) {
			return nil, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, nil
		},
		createFn: func(context.Context, *models.User) error {
			return nil
		},
		updateFn: func(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		deleteFn: func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id.Hex())
		},
	}
}

type thoughtRepoStub struct {
	listFn             func(context.Context) ([]models.Thought, error)
	listByUsernameFn   func(context.Context, string) ([]models.Thought, error)
	getByIDFn          func(context.Context, primitive.ObjectID) (*models.Thought, error)
	createFn           func(context.Context, *models.Thought) error
	updateFn           func(context.Context, primitive.ObjectID, bson.M) (*models.Thought, error)
	deleteFn           func(context.Context, primitive.ObjectID) (*models.Thought, error)
	deleteByUsernameFn func(context.Context, string) (int64, error)
}

func (s *thoughtRepoStub) List(ctx context.Context) ([]models.Thought, error) {
	return s.listFn(ctx)
}
func (s *thoughtRepoStub) ListByUsername(ctx context.Context, username string) ([]models.Thought, error) {
	return s.listByUsernameFn(ctx, username)
}
func (s *thoughtRepoStub) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	return s.getByIDFn(ctx, id)
}
func (s *thoughtRepoStub) Create(ctx context.Context, thought *models.Thought) error {
	return s.createFn(ctx, thought)
}
func (s *thoughtRepoStub) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Thought, error) {
	return s.updateFn(ctx, id, set)
}
func (s *thoughtRepoStub) Delete(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	return s.deleteFn(ctx, id)
}
func (s *thoughtRepoStub) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	return s.deleteByUsernameFn(ctx, username)
}

// noopThoughtRepo returns a stub whose defaults behave like an empty collection.
func noopThoughtRepo() *thoughtRepoStub {
	return &thoughtRepoStub{
		listFn: func(context.Context) ([]models.Thought, error) {
			return []models.Thought{}, nil
		},
		listByUsernameFn: func(context.Context, string) ([]models.Thought, error) {
			return []models.Thought{}, nil
		},
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.Thought, error) {
			return nil, models.NewNotFoundError("Thought", id.Hex())
		},
		createFn: func(context.Context, *models.Thought) error {
			return nil
		},
		updateFn: func(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.Thought, error) {
			return &models.Thought{ID: id}, nil
		},
		deleteFn: func(_ context.Context, id primitive.ObjectID) (*models.Thought, error) {
			return nil, models.NewNotFoundError("Thought", id.Hex())
		},
		deleteByUsernameFn: func(context.Context, string) (int64, error) {
			return 0, nil
		},
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}
