package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todoauth/internal/dbx"
	"github.com/dmitrijs2005/todoauth/internal/server/auth"
	"github.com/dmitrijs2005/todoauth/internal/server/config"
	"github.com/dmitrijs2005/todoauth/internal/server/migrations"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

var testSecret = []byte("test-secret")

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = string(testSecret)
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

// newTestDB opens an in-memory SQLite database with the server schema applied.
// A single connection keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, "sqlite3"))
	return db
}

func newTestHasher(t *testing.T) *auth.BcryptHasher {
	t.Helper()
	h, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

// newIntegrationService wires AuthService with real repositories, hasher and
// token issuer on top of an in-memory database.
func newIntegrationService(t *testing.T) (*AuthService, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db,
		repomanager.NewPostgresRepositoryManager(),
		newTestHasher(t),
		auth.NewTokenIssuer(testSecret, cfg.AccessTokenValidityDuration),
		cfg)
	return svc, db
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- fakes ---

type fakeUsersRepo struct {
	mu sync.Mutex

	getOut *models.User
	getErr error

	// createErrs is consumed one error per call; nil entries succeed.
	createErrs []error
	created    []*models.User

	listOut []string
	listErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if len(f.createErrs) > 0 {
		err, f.createErrs = f.createErrs[0], f.createErrs[1:]
	}
	f.created = append(f.created, u)
	if err != nil {
		return nil, err
	}
	if u.ID == "" {
		u.ID = "u-generated"
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) ListDemoUserIDs(ctx context.Context) ([]string, error) {
	return f.listOut, f.listErr
}

type fakeTasksRepo struct {
	insertErr error
	deleteErr error
	inserted  [][]models.Task
	deleted   []string
}

func (f *fakeTasksRepo) InsertBatch(ctx context.Context, batch []models.Task) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, batch)
	return nil
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	return nil, nil
}

func (f *fakeTasksRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted = append(f.deleted, userID)
	return 5, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository           { return m.t }

type fakeHasher struct {
	hashErr  error
	verifyOK bool

	verified []string
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "digest:" + password, nil
}

func (h *fakeHasher) Verify(password, digest string) bool {
	h.verified = append(h.verified, digest)
	return h.verifyOK
}

func (h *fakeHasher) DummyDigest() string { return "dummy" }

type fakeTokens struct {
	err error
}

func (f *fakeTokens) Issue(user *models.User) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + user.ID, nil
}

var errBoom = errors.New("boom")
