package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/todoauth/internal/dbx"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/repomanager"
)

// DemoResetter restores every demo account's task list to SampleTasks.
type DemoResetter struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDemoResetter(db *sql.DB, m repomanager.RepositoryManager) *DemoResetter {
	return &DemoResetter{db: db, repomanager: m}
}

// Reset replaces the tasks of each demo user in its own transaction and
// returns the number of users reset. It stops at the first failure.
func (r *DemoResetter) Reset(ctx context.Context) (int, error) {
	ids, err := r.repomanager.Users(r.db).ListDemoUserIDs(ctx)
	if err != nil {
		return 0, internalError(CodeDemoResetFailed, "reset_demo_tasks", err)
	}

	for i, id := range ids {
		err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := r.repomanager.Tasks(tx)
			if _, err := repo.DeleteByUser(ctx, id); err != nil {
				return fmt.Errorf("error deleting tasks: %w", err)
			}
			return repo.InsertBatch(ctx, SampleTasks(id))
		})
		if err != nil {
			return i, internalError(CodeDemoResetFailed, "reset_demo_tasks", err, "user_id", id)
		}
	}

	return len(ids), nil
}
