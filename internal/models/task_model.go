package models

import (
	"database/sql"
	"time"
)

type PostingTask struct {
	ID            int64         `db:"id" json:"id"`
	PostID        int64         `db:"post_id" json:"post_id"`
	// Pool tasks are open to any active worker; non-pool tasks are
	// addressed to the owner's own device.
	Pool          bool          `db:"pool" json:"pool"`
	WorkerID      sql.NullInt64 `db:"worker_id" json:"worker_id"`
	Status        string        `db:"status" json:"status"`
	PayoutCents   int64         `db:"payout_cents" json:"payout_cents"`
	Attempts      int           `db:"attempts" json:"attempts"`
	ClaimDeadline sql.NullTime  `db:"claim_deadline" json:"claim_deadline"`
	ErrorMessage  string        `db:"error_message" json:"error_message"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// TaskReceipt records one execution attempt against a posting task.
type TaskReceipt struct {
	ID           int64     `db:"id" json:"id"`
	TaskID       int64     `db:"task_id" json:"task_id"`
	WorkerID     int64     `db:"worker_id" json:"worker_id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	Success      bool      `db:"success" json:"success"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	TaskStatusPending   = "pending"
	TaskStatusClaimed   = "claimed"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)
