package models

import "time"

type Settings struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	Persona      string    `db:"persona" json:"persona"`
	VideosPerDay int       `db:"videos_per_day" json:"videos_per_day"`
	CustomHours  string    `db:"custom_hours" json:"custom_hours"` // comma separated, empty = persona peaks
	Mode         string    `db:"mode" json:"mode"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ModeSolo    = "solo"
	ModeNetwork = "network"
)
