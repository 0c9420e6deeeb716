package transfer

import "time"

type WorkerRegistration struct {
	DeviceName     string `json:"device_name" validate:"required,max=100"`
	PlatformHandle string `json:"platform_handle" validate:"required,max=100"`
	SessionToken   string `json:"session_token" validate:"required"`
}

// ClaimedTask is what a worker device receives when it pulls work from the
// pool: everything needed to execute the post on-device.
type ClaimedTask struct {
	TaskID      int64     `json:"task_id"`
	PostID      int64     `json:"post_id"`
	Caption     string    `json:"caption"`
	Title       string    `json:"title"`
	VideoURL    string    `json:"video_url"`
	PayoutCents int64     `json:"payout_cents"`
	Deadline    time.Time `json:"deadline"`
}

type TaskCompletion struct {
	TaskID       int64  `json:"task_id" validate:"required,gt=0"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message" validate:"omitempty,max=500"`
}
