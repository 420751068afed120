// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, and resolving bearer tokens back
// to user records.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sparks/noteapp/internal/common"
	"github.com/sparks/noteapp/internal/server/auth"
	"github.com/sparks/noteapp/internal/server/config"
	"github.com/sparks/noteapp/internal/server/models"
	"github.com/sparks/noteapp/internal/server/repositories/repomanager"
)

const bearerPrefix = "Bearer "

// AuthResult bundles the persisted user with a freshly issued session token.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - Signup: create users and issue a first token
// - Login: verify credentials and issue a fresh token
// - Authenticate: resolve an Authorization header to a user record
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	bcryptCost  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		bcryptCost:  cfg.BcryptCost,
	}
}

// Signup creates a new user. The email existence check runs before anything
// is written, so a conflict leaves no partial state; the UNIQUE constraint on
// users.email remains the authoritative guard if two signups race past the
// check, and the repository reports that conflict as ErrorEmailTaken too.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*AuthResult, error) {

	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrorEmailTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, common.ErrorEmailTaken
		}
		return nil, common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, time.Now())
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the provided password against the stored hash and, on
// success, issues a fresh token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, time.Now())
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Authenticate resolves a raw Authorization header to a user record. Steps,
// in order: bearer prefix check, signature verification, subject lookup. The
// lookup catches tokens whose user has been deleted since issuance.
func (s *UserService) Authenticate(ctx context.Context, authHeader string) (*models.User, error) {

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, common.ErrorInvalidAuthHeader
	}

	subject, err := auth.GetSubjectFromToken(strings.TrimPrefix(authHeader, bearerPrefix), s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUserNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
