package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub-backend/internal/domains/user/model"
	"campaignhub-backend/internal/domains/user/repository"
	"campaignhub-backend/pkg/jwt"
)

// ---------------------------------------------------------------------
// fakes

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return model.ErrEmailAlreadyExists
		}
	}
	dup := *u
	f.users[u.ID] = &dup
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	dup := *u
	return &dup, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			dup := *u
			return &dup, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

// fakeCache implements just enough of pkg/cache.Cache for the session
// store: JSON round-trip like the Redis implementation does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = raw
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.store[key]
	return ok, nil
}

func (f *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) error { return nil }
func (f *fakeCache) Ping(ctx context.Context) error                                  { return nil }

// ---------------------------------------------------------------------

func newUserServiceUnderTest() (UserService, *fakeUserRepo, *fakeCache) {
	repo := newFakeUserRepo()
	sessions := newFakeCache()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewUserService(repo, manager, sessions), repo, sessions
}

func registerRequest() model.RegisterRequest {
	return model.RegisterRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
		Name:     "Jane Roe",
	}
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newUserServiceUnderTest()
	ctx := context.Background()

	auth, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", auth.User.Email)
	assert.NotEmpty(t, auth.Tokens.AccessToken)
	assert.NotEmpty(t, auth.Tokens.RefreshToken)

	t.Run("password is stored hashed", func(t *testing.T) {
		for _, u := range repo.users {
			assert.NotEqual(t, "correct-horse", u.PasswordHash)
			assert.NotEmpty(t, u.PasswordHash)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, registerRequest())
		assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		req := registerRequest()
		req.Email = "other@example.com"
		req.Password = "short"
		_, err := svc.Register(ctx, req)
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUserServiceUnderTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		auth, err := svc.Login(ctx, model.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, auth.Tokens.AccessToken)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPass := svc.Login(ctx, model.LoginRequest{Email: "jane@example.com", Password: "nope-nope"})
		_, errNoUser := svc.Login(ctx, model.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
		assert.ErrorIs(t, errWrongPass, model.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, model.ErrInvalidCredentials)
	})
}

func TestRefreshAndLogout(t *testing.T) {
	svc, _, _ := newUserServiceUnderTest()
	ctx := context.Background()

	auth, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	userID := uuid.MustParse(auth.User.ID)

	t.Run("refresh rotates the session token", func(t *testing.T) {
		tokens, err := svc.Refresh(ctx, model.RefreshRequest{RefreshToken: auth.Tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)

		// the pre-rotation token is no longer redeemable
		_, err = svc.Refresh(ctx, model.RefreshRequest{RefreshToken: auth.Tokens.RefreshToken})
		assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	})

	t.Run("logout kills the session", func(t *testing.T) {
		fresh, err := svc.Login(ctx, model.LoginRequest{Email: "jane@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, userID))

		_, err = svc.Refresh(ctx, model.RefreshRequest{RefreshToken: fresh.Tokens.RefreshToken})
		assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, model.RefreshRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	})
}
