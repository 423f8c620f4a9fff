package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/apperror"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/tx"
	"github.com/JHRsoftware/jp-stores-sub001/pkg/logger"
)

// Repository persists user accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) error
	List(ctx context.Context) ([]*User, error)
}

// Service provides login and user management.
type Service struct {
	repo      Repository
	tokens    *TokenManager
	attempts  *AttemptStore
	txManager tx.Manager
}

// NewService creates the auth service.
func NewService(repo Repository, tokens *TokenManager, attempts *AttemptStore, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		attempts:  attempts,
		txManager: txManager,
	}
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  *User
}

// Login authenticates a user. Failed attempts count against the
// client-IP+username key; a locked key rejects immediately without touching
// the database, and a successful login clears the counter.
func (s *Service) Login(ctx context.Context, clientIP, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperror.NewValidation("username and password are required")
	}

	key := AttemptKey(clientIP, username)
	if locked, remaining := s.attempts.Locked(key); locked {
		return nil, apperror.NewRateLimited(
			"too many failed login attempts, try again later",
			int(remaining.Round(time.Second).Seconds()),
		)
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			s.attempts.Fail(key)
			return nil, apperror.NewUnauthorized("invalid username or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.attempts.Fail(key)
		return nil, apperror.NewUnauthorized("invalid username or password")
	}

	if !user.Active {
		return nil, apperror.NewForbidden("account is disabled")
	}

	s.attempts.Clear(key)

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	logger.Info(ctx, "user logged in", "username", username)
	return &LoginResult{Token: token, User: user}, nil
}

// CreateUserInput creates an operator account.
type CreateUserInput struct {
	Username    string
	Password    string
	DisplayName string
	AccessPages []string
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	if in.Username == "" {
		return nil, apperror.NewValidation("username is required")
	}
	if len(in.Password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters")
	}

	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperror.NewDuplicate("user", "username", in.Username)
	} else if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           id.New(),
		Username:     in.Username,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		AccessPages:  in.AccessPages,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(ctx); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// VerifyToken exposes token verification to the HTTP middleware.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}
