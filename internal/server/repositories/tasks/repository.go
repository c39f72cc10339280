package tasks

import (
	"context"

	"github.com/dmitrijs2005/todoauth/internal/server/models"
)

type Repository interface {
	InsertBatch(ctx context.Context, tasks []models.Task) error
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
