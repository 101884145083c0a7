package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userRepoStub implements repository.UserRepository with overridable fields.
type userRepoStub struct {
	listFn          func(ctx context.Context) ([]models.User, error)
	getByIDFn       func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	deleteFn        func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) { return s.listFn(ctx) }
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

// thoughtRepoStub implements repository.ThoughtRepository with overridable fields.
type thoughtRepoStub struct {
	listFn             func(ctx context.Context) ([]models.Thought, error)
	listByUsernameFn   func(ctx context.Context, username string) ([]models.Thought, error)
	getByIDFn          func(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	createFn           func(ctx context.Context, thought *models.Thought) error
	updateFn           func(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Thought, error)
	deleteFn           func(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	deleteByUsernameFn func(ctx context.Context, username string) (int64, error)
}

func (s *thoughtRepoStub) List(ctx context.Context) ([]models.Thought, error) { return s.listFn(ctx) }
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

// noopUserRepo behaves like an empty users collection.
func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		listFn: func(context.Context) ([]models.User, error) { return []models.User{}, nil },
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id.Hex())
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn: func(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		deleteFn: func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id.Hex())
		},
	}
}

// noopThoughtRepo behaves like an empty thoughts collection.
func noopThoughtRepo() *thoughtRepoStub {
	return &thoughtRepoStub{
		listFn:           func(context.Context) ([]models.Thought, error) { return []models.Thought{}, nil },
		listByUsernameFn: func(context.Context, string) ([]models.Thought, error) { return []models.Thought{}, nil },
		getByIDFn: func(_ context.Context, id primitive.ObjectID) (*models.Thought, error) {
			return nil, models.NewNotFoundError("Thought", id.Hex())
		},
		createFn: func(context.Context, *models.Thought) error { return nil },
		updateFn: func(_ context.Context, id primitive.ObjectID, _ bson.M) (*models.Thought, error) {
			return &models.Thought{ID: id}, nil
		},
		deleteFn: func(_ context.Context, id primitive.ObjectID) (*models.Thought, error) {
			return nil, models.NewNotFoundError("Thought", id.Hex())
		},
		deleteByUsernameFn: func(context.Context, string) (int64, error) { return 0, nil },
	}
}

// newTestApp wires a Fiber app around stubbed repositories, skipping
// middleware so tests exercise the handlers directly.
func newTestApp(userRepo repository.UserRepository, thoughtRepo repository.ThoughtRepository) *fiber.App {
	srv := &Server{
		userRepo:       userRepo,
		thoughtRepo:    thoughtRepo,
		userService:    service.NewUserService(userRepo, thoughtRepo),
		thoughtService: service.NewThoughtService(thoughtRepo, userRepo),
	}
	app := fiber.New()
	srv.SetupRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
