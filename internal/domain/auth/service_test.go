package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
)

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockRepo struct {
	users map[string]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[string]*User)}
}

func (m *mockRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	return u, nil
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	m.users[u.Username] = u
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func seedUser(t *testing.T, repo *mockRepo, username, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &User{
		ID:           id.New(),
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  username,
		AccessPages:  []string{"dashboard", "invoice"},
		Active:       true,
	}
	repo.users[username] = u
	return u
}

func newTestService(t *testing.T, repo *mockRepo) (*Service, *AttemptStore, *fakeClock) {
	t.Helper()
	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	clock := &fakeClock{t: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	attempts := NewAttemptStore(DefaultAttemptStoreConfig())
	attempts.now = clock.Now

	return NewService(repo, tokens, attempts, &mockTxManager{}), attempts, clock
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLogin_Success(t *testing.T) {
	repo := newMockRepo()
	seedUser(t, repo, "cashier", "s3cret-pass")
	svc, _, _ := newTestService(t, repo)

	res, err := svc.Login(context.Background(), "10.0.0.1", "cashier", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "cashier", res.User.Username)
	assert.Equal(t, []string{"dashboard", "invoice"}, res.User.AccessPages)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newTestService(t, newMockRepo())

	_, err := svc.Login(context.Background(), "10.0.0.1", "", "pw")
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Login(context.Background(), "10.0.0.1", "cashier", "")
	assert.True(t, apperror.IsValidation(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockRepo()
	seedUser(t, repo, "cashier", "s3cret-pass")
	svc, _, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), "10.0.0.1", "cashier", "wrong")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestLogin_LockoutAfterFiveFailures(t *testing.T) {
	repo := newMockRepo()
	seedUser(t, repo, "cashier", "s3cret-pass")
	svc, _, clock := newTestService(t, repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, "10.0.0.1", "cashier", "wrong")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code, "attempt %d", i+1)
	}

	// Locked now, even with the right password.
	_, err := svc.Login(ctx, "10.0.0.1", "cashier", "s3cret-pass")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRateLimited, appErr.Code)

	// The window expires after 15 minutes.
	clock.Advance(15*time.Minute + time.Second)
	_, err = svc.Login(ctx, "10.0.0.1", "cashier", "s3cret-pass")
	assert.NoError(t, err)
}

func TestLogin_SuccessClearsCounter(t *testing.T) {
	repo := newMockRepo()
	seedUser(t, repo, "cashier", "s3cret-pass")
	svc, _, _ := newTestService(t, repo)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = svc.Login(ctx, "10.0.0.1", "cashier", "wrong")
	}
	_, err := svc.Login(ctx, "10.0.0.1", "cashier", "s3cret-pass")
	require.NoError(t, err)

	// Counter was reset; four more failures are not yet a lockout.
	for i := 0; i < 4; i++ {
		_, _ = svc.Login(ctx, "10.0.0.1", "cashier", "wrong")
	}
	_, err = svc.Login(ctx, "10.0.0.1", "cashier", "s3cret-pass")
	assert.NoError(t, err)
}

func TestLogin_LockoutIsKeyedByIPAndUsername(t *testing.T) {
	repo := newMockRepo()
	seedUser(t, repo, "cashier", "s3cret-pass")
	seedUser(t, repo, "manager", "other-pass1")
	svc, _, _ := newTestService(t, repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = svc.Login(ctx, "10.0.0.1", "cashier", "wrong")
	}

	// Same user from another address is unaffected.
	_, err := svc.Login(ctx, "10.0.0.2", "cashier", "s3cret-pass")
	assert.NoError(t, err)

	// Another user from the locked address is unaffected.
	_, err = svc.Login(ctx, "10.0.0.1", "manager", "other-pass1")
	assert.NoError(t, err)
}

func TestLogin_DisabledAccount(t *testing.T) {
	repo := newMockRepo()
	u := seedUser(t, repo, "cashier", "s3cret-pass")
	u.Active = false
	svc, _, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), "10.0.0.1", "cashier", "s3cret-pass")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestAttemptStore_SweepEvictsStaleEntries(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	store := NewAttemptStore(DefaultAttemptStoreConfig())
	store.now = clock.Now

	store.Fail(AttemptKey("10.0.0.1", "cashier"))
	for i := 0; i < 5; i++ {
		store.Fail(AttemptKey("10.0.0.2", "cashier"))
	}

	// Nothing is stale yet; the locked entry must survive.
	assert.Equal(t, 0, store.sweep())

	clock.Advance(16 * time.Minute)
	assert.Equal(t, 2, store.sweep())

	locked, _ := store.Locked(AttemptKey("10.0.0.2", "cashier"))
	assert.False(t, locked)
}

func TestAttemptStore_StopAlwaysReturns(t *testing.T) {
	cfg := DefaultAttemptStoreConfig()
	cfg.SweepInterval = time.Nanosecond

	for i := 0; i < 200; i++ {
		store := NewAttemptStore(cfg)
		store.Start()

		done := make(chan struct{})
		go func() {
			store.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("iteration %d: Stop did not return", i)
		}

		// Stop after Stop is a no-op, not a hang.
		store.Stop()
	}
}

func TestCreateUser(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(t, repo)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, CreateUserInput{
		Username:    "newbie",
		Password:    "long-enough-pw",
		DisplayName: "New Operator",
		AccessPages: []string{"invoice"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, "long-enough-pw", u.PasswordHash)

	_, err = svc.Login(ctx, "10.0.0.1", "newbie", "long-enough-pw")
	assert.NoError(t, err)

	_, err = svc.CreateUser(ctx, CreateUserInput{Username: "newbie", Password: "long-enough-pw"})
	assert.True(t, apperror.IsDuplicate(err))

	_, err = svc.CreateUser(ctx, CreateUserInput{Username: "x", Password: "short"})
	assert.True(t, apperror.IsValidation(err))
}

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	u := &User{ID: id.New(), Username: "cashier", AccessPages: []string{"*"}}
	signed, err := tokens.Issue(u)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "cashier", claims.Username)
	assert.Equal(t, []string{"*"}, claims.AccessPages)
	assert.Equal(t, u.ID.String(), claims.Subject)

	_, err = tokens.Verify(signed + "tampered")
	assert.Error(t, err)

	_, err = NewTokenManager("", time.Hour)
	assert.Error(t, err)
}
