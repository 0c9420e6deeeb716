package job

import (
	"context"
	"log/slog"
	"time"

	"clipflow/internal/service"
)

type TaskReaperJob struct {
	ts service.TaskService
}

func NewTaskReaperJob(ts service.TaskService) *TaskReaperJob {
	return &TaskReaperJob{
		ts: ts,
	}
}

// ReapExpiredClaims returns timed-out claims to the pool so another device
// can pick them up. Claims that burned through their attempt budget are
// marked failed instead.
func (c *TaskReaperJob) ReapExpiredClaims() {
	ctx := context.Background()

	requeued, err := c.ts.RequeueExpired(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if requeued > 0 {
		slog.Info("requeued expired task claims", slog.Int("count", requeued))
	}
}

// ReopenOverduePosts sweeps scheduled posts whose time passed without a
// task being opened and runs them through the normal opening path.
func (c *TaskReaperJob) ReopenOverduePosts() {
	ctx := context.Background()

	reopened, err := c.ts.ReopenOverdue(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if reopened > 0 {
		slog.Info("reopened overdue scheduled posts", slog.Int("count", reopened))
	}
}
