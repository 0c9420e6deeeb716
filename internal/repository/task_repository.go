package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"clipflow/internal/models"
)

type TaskRepository interface {
	Create(ctx context.Context, tx *sql.Tx, task *models.PostingTask) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.PostingTask, error)
	ClaimNext(ctx context.Context, workerID int64, deadline time.Time) (*models.PostingTask, error)
	ListExpired(ctx context.Context, now time.Time) ([]*models.PostingTask, error)
	Release(ctx context.Context, taskID int64) error
	UpdateStatus(ctx context.Context, tx *sql.Tx, taskID int64, status, errorMessage string) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, post_id, pool, worker_id, status, payout_cents, attempts, claim_deadline, error_message, created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, tx *sql.Tx, task *models.PostingTask) (int64, error) {
	query := `
		INSERT INTO posting_tasks (post_id, pool, worker_id, status, payout_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, task.PostID, task.Pool, task.WorkerID, task.Status, task.PayoutCents).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, task.PostID, task.Pool, task.WorkerID, task.Status, task.PayoutCents).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*models.PostingTask, error) {
	query := `SELECT ` + taskColumns + ` FROM posting_tasks WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return task, nil
}

// ClaimNext atomically hands the oldest runnable task to a worker: either a
// task addressed to that worker, or an open pool task. SKIP LOCKED keeps
// concurrent workers from fighting over the same row.
func (r *taskRepository) ClaimNext(ctx context.Context, workerID int64, deadline time.Time) (*models.PostingTask, error) {
	query := `
		UPDATE posting_tasks
		SET status = $1,
			worker_id = $2,
			claim_deadline = $3,
			attempts = attempts + 1,
			updated_at = $4
		WHERE id = (
			SELECT id FROM posting_tasks
			WHERE status = $5
			  AND (worker_id = $2 OR (pool AND worker_id IS NULL))
			ORDER BY created_at ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		models.TaskStatusClaimed, workerID, deadline, time.Now(), models.TaskStatusPending)

	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) ListExpired(ctx context.Context, now time.Time) ([]*models.PostingTask, error) {
	query := `SELECT ` + taskColumns + ` FROM posting_tasks WHERE status = $1 AND claim_deadline < $2`

	rows, err := r.db.QueryContext(ctx, query, models.TaskStatusClaimed, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.PostingTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Release puts a claimed task back in the pending state. Pool tasks lose
// their worker assignment so any device can pick them up again.
func (r *taskRepository) Release(ctx context.Context, taskID int64) error {
	query := `
		UPDATE posting_tasks
		SET status = $1,
			worker_id = CASE WHEN pool THEN NULL ELSE worker_id END,
			claim_deadline = NULL,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, models.TaskStatusPending, time.Now(), taskID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, taskID int64, status, errorMessage string) error {
	query := `
		UPDATE posting_tasks
		SET status = $1,
			error_message = $2,
			updated_at = $3
		WHERE id = $4
	`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, status, errorMessage, time.Now(), taskID)
	} else {
		_, err = r.db.ExecContext(ctx, query, status, errorMessage, time.Now(), taskID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func scanTask(row rowScanner) (*models.PostingTask, error) {
	var task models.PostingTask
	err := row.Scan(&task.ID, &task.PostID, &task.Pool, &task.WorkerID, &task.Status,
		&task.PayoutCents, &task.Attempts, &task.ClaimDeadline, &task.ErrorMessage,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
