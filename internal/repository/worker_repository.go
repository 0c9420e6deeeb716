package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"clipflow/internal/models"
)

type WorkerRepository interface {
	Create(ctx context.Context, tx *sql.Tx, w *models.Worker) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Worker, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Worker, error)
	CheckByUserID(ctx context.Context, workerID, userID int64) (bool, error)
	Touch(ctx context.Context, workerID int64, seenAt time.Time) error
	AddBalance(ctx context.Context, tx *sql.Tx, workerID, amountCents int64) error
	SetStatus(ctx context.Context, workerID int64, status string) error
	Remove(ctx context.Context, id int64) error
}

type workerRepository struct {
	db *sql.DB
}

func NewWorkerRepository(db *sql.DB) WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `id, user_id, device_name, platform_handle, session_token, status, balance_cents, last_seen_at, created_at, updated_at`

func (r *workerRepository) Create(ctx context.Context, tx *sql.Tx, w *models.Worker) (int64, error) {
	var err error
	var id int64

	query := `
		INSERT INTO workers (user_id, device_name, platform_handle, session_token, status, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, w.UserID, w.DeviceName, w.PlatformHandle, w.SessionToken, w.Status, w.LastSeenAt).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, w.UserID, w.DeviceName, w.PlatformHandle, w.SessionToken, w.Status, w.LastSeenAt).Scan(&id)
	}

	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id int64) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var w models.Worker
	err := row.Scan(&w.ID, &w.UserID, &w.DeviceName, &w.PlatformHandle, &w.SessionToken,
		&w.Status, &w.BalanceCents, &w.LastSeenAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &w, nil
}

func (r *workerRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var workers []*models.Worker
	for rows.Next() {
		var w models.Worker
		err := rows.Scan(&w.ID, &w.UserID, &w.DeviceName, &w.PlatformHandle, &w.SessionToken,
			&w.Status, &w.BalanceCents, &w.LastSeenAt, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		workers = append(workers, &w)
	}
	return workers, rows.Err()
}

func (r *workerRepository) CheckByUserID(ctx context.Context, workerID, userID int64) (bool, error) {
	query := "SELECT 1 FROM workers WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, workerID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *workerRepository) Touch(ctx context.Context, workerID int64, seenAt time.Time) error {
	query := `UPDATE workers SET last_seen_at = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, seenAt, time.Now(), workerID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *workerRepository) AddBalance(ctx context.Context, tx *sql.Tx, workerID, amountCents int64) error {
	query := `UPDATE workers SET balance_cents = balance_cents + $1, updated_at = $2 WHERE id = $3`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, amountCents, time.Now(), workerID)
	} else {
		_, err = r.db.ExecContext(ctx, query, amountCents, time.Now(), workerID)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *workerRepository) SetStatus(ctx context.Context, workerID int64, status string) error {
	query := `UPDATE workers SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), workerID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *workerRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM workers WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
