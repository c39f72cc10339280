package users

import (
	"context"

	"github.com/dmitrijs2005/todoauth/internal/server/models"
)

// Repository is the user directory. Create must be create-if-absent on email:
// it fails with common.ErrEmailExists instead of overwriting.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListDemoUserIDs(ctx context.Context) ([]string, error)
}
