package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"clipflow/internal/models"
)

type TaskReceiptRepository interface {
	Create(ctx context.Context, tx *sql.Tx, receipt *models.TaskReceipt) (int64, error)
	ListByWorkerID(ctx context.Context, workerID int64) ([]*models.TaskReceipt, error)
}

type taskReceiptRepository struct {
	db *sql.DB
}

func NewTaskReceiptRepository(db *sql.DB) TaskReceiptRepository {
	return &taskReceiptRepository{db: db}
}

func (r *taskReceiptRepository) Create(ctx context.Context, tx *sql.Tx, receipt *models.TaskReceipt) (int64, error) {
	query := `
		INSERT INTO task_receipts (task_id, worker_id, post_id, success, error_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, receipt.TaskID, receipt.WorkerID, receipt.PostID, receipt.Success, receipt.ErrorMessage).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, receipt.TaskID, receipt.WorkerID, receipt.PostID, receipt.Success, receipt.ErrorMessage).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *taskReceiptRepository) ListByWorkerID(ctx context.Context, workerID int64) ([]*models.TaskReceipt, error) {
	query := `
		SELECT id, task_id, worker_id, post_id, success, error_message, created_at
		FROM task_receipts
		WHERE worker_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, workerID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.TaskReceipt
	for rows.Next() {
		var receipt models.TaskReceipt
		err := rows.Scan(&receipt.ID, &receipt.TaskID, &receipt.WorkerID, &receipt.PostID, &receipt.Success, &receipt.ErrorMessage, &receipt.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		receipts = append(receipts, &receipt)
	}
	return receipts, rows.Err()
}
