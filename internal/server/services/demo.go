package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/dbx"
	"github.com/dmitrijs2005/todoauth/internal/server/config"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const demoSuffixLen = 8

// SampleTasks returns the tasks every demo account starts with.
func SampleTasks(userID string) []models.Task {
	return []models.Task{
		{UserID: userID, Content: "Welcome to my Todo App! 👋", Priority: models.PriorityMedium, Status: models.StatusPending},
		{UserID: userID, Content: "Try adding a new todo using the input above", Priority: models.PriorityLow, Status: models.StatusPending},
		{UserID: userID, Content: "Click on a todo to edit it", Priority: models.PriorityMedium, Status: models.StatusInProgress},
		{UserID: userID, Content: "Use filters to organize your tasks", Priority: models.PriorityHigh, Status: models.StatusPending},
		{UserID: userID, Content: "Check out the priority and status options", Priority: models.PriorityLow, Status: models.StatusCompleted},
	}
}

// DemoProvisioner creates throwaway demo accounts seeded with SampleTasks.
type DemoProvisioner struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	domain      string
	attempts    int
	newID       func() uuid.UUID
}

func NewDemoProvisioner(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, cfg *config.Config) *DemoProvisioner {
	domain := cfg.DemoEmailDomain
	if domain == "" {
		domain = common.DefaultDemoEmailDomain
	}
	attempts := cfg.DemoEmailAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &DemoProvisioner{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		domain:      domain,
		attempts:    attempts,
		newID:       uuid.New,
	}
}

// Provision creates a demo user named demo-<suffix>@<domain>, where suffix is
// the first 8 hex characters of a random UUID and doubles as the password.
// The user and its sample tasks are written in one transaction. When the
// email is already taken the attempt is repeated with a new suffix.
func (p *DemoProvisioner) Provision(ctx context.Context) (*models.User, string, error) {
	var user *models.User
	var email string

	backoff := retry.WithMaxRetries(uint64(p.attempts-1), retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		suffix := p.newID().String()[:demoSuffixLen]
		email = fmt.Sprintf("demo-%s@%s", suffix, p.domain)

		u, err := p.create(ctx, email, suffix)
		if err != nil {
			if errors.Is(err, common.ErrEmailExists) {
				return retry.RetryableError(err)
			}
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, "", internalError(CodeDemoFailed, "demo_login", err, "email", email)
	}

	token, err := p.tokens.Issue(user)
	if err != nil {
		return nil, "", internalError(CodeDemoFailed, "demo_login", err, "user_id", user.ID, "email", email)
	}

	return user, token, nil
}

func (p *DemoProvisioner) create(ctx context.Context, email, password string) (*models.User, error) {
	digest, err := p.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing demo password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: digest,
		Role:         models.RoleDemo,
		IsDemo:       true,
	}

	err = dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := p.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		if err := p.repomanager.Tasks(tx).InsertBatch(ctx, SampleTasks(created.ID)); err != nil {
			return fmt.Errorf("error seeding demo tasks: %w", err)
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
