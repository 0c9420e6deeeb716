package models

import (
	"time"
)

type Worker struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	DeviceName     string    `db:"device_name" json:"device_name"`
	PlatformHandle string    `db:"platform_handle" json:"platform_handle"`
	SessionToken   string    `db:"session_token" json:"-"`
	Status         string    `db:"status" json:"status"`
	BalanceCents   int64     `db:"balance_cents" json:"balance_cents"`
	LastSeenAt     time.Time `db:"last_seen_at" json:"last_seen_at"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

const (
	WorkerStatusActive    = "active"
	WorkerStatusSuspended = "suspended"
)
