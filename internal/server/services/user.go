// Package services contains server-side business logic: account
// registration/login with token issuance, and owner-scoped task
// operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
)

// AuthResult bundles the public user projection and a freshly issued
// bearer token, as returned by register and login.
type AuthResult struct {
	User  models.UserProfile
	Token string
}

// UserService provides authentication-related operations:
// - Register: validate, create the account, mint a token
// - Login: verify credentials and mint a token
// - GetMe: return the authenticated user's profile
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	logger      logging.Logger
}

// NewUserService constructs a UserService using repositories and the auth
// primitives.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenManager, hasher *auth.PasswordHasher, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		logger:      l.With("module", "user_service"),
	}
}

// Register creates a new account and returns its public projection plus a
// bearer token. Empty fields or a weak password yield a validation error;
// a duplicate email yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*AuthResult, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, common.NewValidationError("All fields are required.")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{FirstName: firstName, LastName: lastName, Email: email, PasswordHash: hash}

	// The existence check and the insert share a transaction; the unique
	// index on email backs it up against races.
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrAlreadyExists
		}
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("error checking email: %w", err)
		}
		_, err = repo.Create(ctx, user)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		s.logger.Error(ctx, "register failed", "error", err.Error())
		return nil, common.ErrInternal
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err.Error())
		return nil, common.ErrInternal
	}

	return &AuthResult{User: user.Profile(), Token: token}, nil
}

// Login verifies the credentials and returns the user's public projection
// plus a fresh token. An unknown email and a wrong password are
// deliberately indistinguishable: both return common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("Email and password are required.")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "error", err.Error())
		return nil, common.ErrInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err.Error())
		return nil, common.ErrInternal
	}

	return &AuthResult{User: user.Profile(), Token: token}, nil
}

// GetMe returns the public profile of the given user, including the
// derived full name. A user deleted after token issuance yields
// common.ErrNotFound.
func (s *UserService) GetMe(ctx context.Context, userID int64) (*models.UserProfile, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "profile lookup failed", "error", err.Error())
		return nil, common.ErrInternal
	}

	profile := user.Profile()
	profile.Name = user.FirstName + " " + user.LastName
	return &profile, nil
}
