// Package tasks implements the task store over database/sql.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/dbx"
	"github.com/dmitrijs2005/todoauth/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const columnsPerTask = 5

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InsertBatch stores all tasks with a single statement, so either every row
// is written or none is. Tasks without an ID get a fresh UUID.
func (r *PostgresRepository) InsertBatch(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO tasks (id, user_id, content, priority, status) VALUES ")

	args := make([]any, 0, len(tasks)*columnsPerTask)
	for i := range tasks {
		t := &tasks[i]
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * columnsPerTask
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, t.ID, t.UserID, t.Content, int(t.Priority), int(t.Status))
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("task owner: %w", common.ErrorNotFound)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	query :=
		`SELECT id, user_id, content, priority, status FROM tasks
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var t models.Task
		var priority, status int
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &priority, &status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		t.Priority = models.Priority(priority)
		t.Status = models.Status(status)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// DeleteByUser removes every task owned by userID and reports how many rows
// were removed.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
