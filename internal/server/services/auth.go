// Package services contains server-side business logic. AuthService handles
// login, registration and demo sign-in and returns a bearer token together
// with the sanitized user view.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/server/config"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
)

// PasswordHasher produces and checks credential digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	// DummyDigest is verified against when no user matches, so that an
	// unknown email and a wrong password take the same time.
	DummyDigest() string
}

// TokenIssuer signs bearer tokens for a user.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// AuthResult is the outcome shared by Login, Register and DemoLogin.
type AuthResult struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	demo        *DemoProvisioner
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		demo:        NewDemoProvisioner(db, m, hasher, tokens, cfg),
	}
}

// Login checks email and password against the directory. An unknown email
// and a wrong password both yield common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingCredentials
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.hasher.DummyDigest())
			return nil, common.ErrInvalidCredentials
		}
		return nil, internalError(CodeLoginFailed, "login", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(CodeLoginFailed, "login", user)
}

// Register creates a standard account. The directory's unique email
// constraint has the final word, so a concurrent registration of the same
// email still fails with common.ErrEmailExists.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingCredentials
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrEmailExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError(CodeRegisterFailed, "register", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, internalError(CodeRegisterFailed, "register", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: digest,
		Role:         models.RoleStandard,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailExists) {
			return nil, common.ErrEmailExists
		}
		return nil, internalError(CodeRegisterFailed, "register", err)
	}

	return s.issue(CodeRegisterFailed, "register", user)
}

// DemoLogin provisions a fresh demo account and signs it in.
func (s *AuthService) DemoLogin(ctx context.Context) (*AuthResult, error) {
	user, token, err := s.demo.Provision(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.View()}, nil
}

func (s *AuthService) issue(code, operation string, user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, internalError(code, operation, err, "user_id", user.ID)
	}
	return &AuthResult{Token: token, User: user.View()}, nil
}
