package models

import "time"

type Post struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	BatchID       string    `db:"batch_id" json:"batch_id"`
	SlotIndex     int       `db:"slot_index" json:"slot_index"`
	AssetID       int64     `db:"asset_id" json:"asset_id"`
	Caption       string    `db:"caption" json:"caption"`
	Title         string    `db:"title" json:"title"`
	ScheduledTime time.Time `db:"scheduled_time" json:"scheduled_time"`
	Status        string    `db:"status" json:"status"`
	ErrorMessage  string    `db:"error_message" json:"error_message"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type MediaAsset struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	FileName     string    `db:"file_name"`
	FileType     string    `db:"file_type"`
	FileSize     int64     `db:"file_size"`
	FileURL      string    `db:"file_url"`
	ThumbnailURL string    `db:"thumbnail_url"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	PostStatusScheduled   = "scheduled"
	PostStatusPosting     = "posting"
	PostStatusCompleted   = "completed"
	PostStatusFailed      = "failed"
	PostStatusNeedsAction = "needs_action"
	PostStatusCancelled   = "cancelled"
)
