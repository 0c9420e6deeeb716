package transfer

import "time"

// BatchScheduleRequest carries the batch parameters the client edits. The
// same payload drives both preview and create, so a confirmed batch is
// exactly what the user last saw.
type BatchScheduleRequest struct {
	AssetIDs     []int64  `json:"asset_ids" validate:"required,min=1,dive,gt=0"`
	Captions     []string `json:"captions"`
	Titles       []string `json:"titles"`
	StartDate    string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	VideosPerDay int      `json:"videos_per_day" validate:"required,gt=0"`
	Persona      string   `json:"persona" validate:"omitempty,oneof=general student worker night_owl"`
	CustomHours  []int    `json:"custom_hours" validate:"omitempty,dive,gte=0,lte=23"`
}

type PreviewSlot struct {
	VideoIndex  int       `json:"video_index"`
	AssetID     int64     `json:"asset_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DisplayTime string    `json:"display_time"`
}

type SchedulePreview struct {
	Slots           []PreviewSlot `json:"slots"`
	TotalDays       int           `json:"total_days"`
	Quality         string        `json:"quality"`
	IntervalMinutes int           `json:"interval_minutes"`
	Warning         string        `json:"warning,omitempty"`
}

type BatchCreated struct {
	BatchID string  `json:"batch_id"`
	PostIDs []int64 `json:"post_ids"`
}
