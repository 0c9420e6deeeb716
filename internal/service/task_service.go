package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "clipflow/configs"
	"clipflow/internal/models"
	"clipflow/internal/repository"
	"clipflow/internal/transfer"
)

type TaskService interface {
	OpenForPost(ctx context.Context, postID int64) error
	ClaimNext(ctx context.Context, userID, workerID int64) (*transfer.ClaimedTask, error)
	Complete(ctx context.Context, userID, workerID int64, tc *transfer.TaskCompletion) error
	Receipts(ctx context.Context, userID, workerID int64) ([]*models.TaskReceipt, error)
	RequeueExpired(ctx context.Context, now time.Time) (int, error)
	ReopenOverdue(ctx context.Context, now time.Time) (int, error)
}

type taskService struct {
	cfg config.Config
	db  *sql.DB
	tr  repository.TaskRepository
	pr  repository.PostRepository
	wr  repository.WorkerRepository
	sr  repository.SettingsRepository
	ma  repository.MediaAssetRepository
	rc  repository.TaskReceiptRepository
}

func NewTaskService(
	cfg config.Config,
	db *sql.DB,
	tr repository.TaskRepository,
	pr repository.PostRepository,
	wr repository.WorkerRepository,
	sr repository.SettingsRepository,
	ma repository.MediaAssetRepository,
	rc repository.TaskReceiptRepository) TaskService {
	return &taskService{
		cfg: cfg,
		db:  db,
		tr:  tr,
		pr:  pr,
		wr:  wr,
		sr:  sr,
		ma:  ma,
		rc:  rc,
	}
}

// OpenForPost is invoked when a post's scheduled time arrives. It moves the
// post to posting and creates the execution task: addressed to the owner's
// own device in solo mode, or placed in the open pool in network mode.
func (s *taskService) OpenForPost(ctx context.Context, postID int64) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		err = fmt.Errorf("post %d not found", postID)
		slog.Info(err.Error())
		return err
	}

	// Cancelled or already-published posts leave the pending asynq task
	// as a no-op.
	if post.Status != models.PostStatusScheduled {
		slog.Info("skipping task creation", "post_id", postID, "status", post.Status)
		return nil
	}

	task := models.PostingTask{
		PostID: post.ID,
		Status: models.TaskStatusPending,
	}

	settings, hasSettings, err := s.sr.GetByUserID(ctx, post.UserID)
	if err != nil {
		return err
	}

	if hasSettings && settings.Mode == models.ModeNetwork {
		task.Pool = true
		task.PayoutCents = s.cfg.Tasks.PayoutCents
	} else {
		workerID, err := s.ownDevice(ctx, post.UserID)
		if err != nil {
			if updErr := s.pr.UpdateStatus(ctx, nil, post.ID, models.PostStatusNeedsAction, err.Error()); updErr != nil {
				return updErr
			}
			return nil
		}
		task.WorkerID = sql.NullInt64{Int64: workerID, Valid: true}
	}

	if _, err := s.tr.Create(ctx, nil, &task); err != nil {
		return err
	}

	return s.pr.UpdateStatus(ctx, nil, post.ID, models.PostStatusPosting, "")
}

func (s *taskService) ownDevice(ctx context.Context, userID int64) (int64, error) {
	workers, err := s.wr.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, w := range workers {
		if w.Status == models.WorkerStatusActive {
			return w.ID, nil
		}
	}
	return 0, errors.New("no active device registered for solo posting")
}

func (s *taskService) ClaimNext(ctx context.Context, userID, workerID int64) (*transfer.ClaimedTask, error) {
	worker, err := s.checkWorker(ctx, userID, workerID)
	if err != nil {
		return nil, err
	}

	if err := s.wr.Touch(ctx, worker.ID, time.Now()); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(time.Duration(s.cfg.Tasks.ClaimTimeoutMinutes) * time.Minute)
	task, err := s.tr.ClaimNext(ctx, worker.ID, deadline)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	post, err := s.pr.GetByID(ctx, task.PostID)
	if err != nil || post == nil {
		return nil, fmt.Errorf("error loading post for task %d", task.ID)
	}

	asset, err := s.ma.GetByID(ctx, post.AssetID)
	if err != nil || asset == nil {
		return nil, fmt.Errorf("error loading asset for post %d", post.ID)
	}

	return &transfer.ClaimedTask{
		TaskID:      task.ID,
		PostID:      post.ID,
		Caption:     post.Caption,
		Title:       post.Title,
		VideoURL:    asset.FileURL,
		PayoutCents: task.PayoutCents,
		Deadline:    deadline,
	}, nil
}

// Complete settles one execution attempt: a receipt is always written, and
// on success the pool payout is credited in the same transaction.
func (s *taskService) Complete(ctx context.Context, userID, workerID int64, tc *transfer.TaskCompletion) error {
	if err := validate.Struct(tc); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("invalid task completion: %w", err)
	}

	worker, err := s.checkWorker(ctx, userID, workerID)
	if err != nil {
		return err
	}

	task, err := s.tr.GetByID(ctx, tc.TaskID)
	if err != nil {
		return err
	}
	if task == nil || !task.WorkerID.Valid || task.WorkerID.Int64 != worker.ID {
		err = errors.New("task is not assigned to this worker")
		slog.Info(err.Error())
		return err
	}
	if task.Status != models.TaskStatusClaimed {
		err = fmt.Errorf("task in status %s cannot be completed", task.Status)
		slog.Info(err.Error())
		return err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	receipt := models.TaskReceipt{
		TaskID:       task.ID,
		WorkerID:     worker.ID,
		PostID:       task.PostID,
		Success:      tc.Success,
		ErrorMessage: tc.ErrorMessage,
	}
	if _, err = s.rc.Create(ctx, tx, &receipt); err != nil {
		return fmt.Errorf("error saving task receipt: %w", err)
	}

	if tc.Success {
		if err = s.tr.UpdateStatus(ctx, tx, task.ID, models.TaskStatusCompleted, ""); err != nil {
			return err
		}
		if task.Pool && task.PayoutCents > 0 {
			if err = s.wr.AddBalance(ctx, tx, worker.ID, task.PayoutCents); err != nil {
				return fmt.Errorf("error crediting payout: %w", err)
			}
		}
		if err = s.pr.UpdateStatus(ctx, tx, task.PostID, models.PostStatusCompleted, ""); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	if err = s.tr.UpdateStatus(ctx, tx, task.ID, models.TaskStatusFailed, tc.ErrorMessage); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if task.Attempts < s.cfg.Tasks.MaxAttempts {
		return s.tr.Release(ctx, task.ID)
	}
	return s.pr.UpdateStatus(ctx, nil, task.PostID, models.PostStatusFailed, tc.ErrorMessage)
}

// Receipts lists a device's execution history, newest first.
func (s *taskService) Receipts(ctx context.Context, userID, workerID int64) ([]*models.TaskReceipt, error) {
	isValid, err := s.wr.CheckByUserID(ctx, workerID, userID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		err = errors.New("worker doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return s.rc.ListByWorkerID(ctx, workerID)
}

// RequeueExpired returns abandoned claims to the pool, or parks the post in
// needs_action once the attempt budget is spent.
func (s *taskService) RequeueExpired(ctx context.Context, now time.Time) (int, error) {
	tasks, err := s.tr.ListExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	requeued := 0
	for _, task := range tasks {
		if task.Attempts >= s.cfg.Tasks.MaxAttempts {
			if err := s.tr.UpdateStatus(ctx, nil, task.ID, models.TaskStatusFailed, "claim expired"); err != nil {
				slog.Info(err.Error())
				continue
			}
			if err := s.pr.UpdateStatus(ctx, nil, task.PostID, models.PostStatusNeedsAction, "no worker completed the post in time"); err != nil {
				slog.Info(err.Error())
			}
			continue
		}

		if err := s.tr.Release(ctx, task.ID); err != nil {
			slog.Info(err.Error())
			continue
		}
		requeued++
	}

	return requeued, nil
}

// overdueGrace keeps the sweep from racing the queue handler for posts
// whose scheduled time has only just passed.
const overdueGrace = 5 * time.Minute

// ReopenOverdue picks up scheduled posts whose time came and went without a
// task being opened, which happens when the enqueue after batch creation
// failed partway through. Each one goes through the normal opening path.
func (s *taskService) ReopenOverdue(ctx context.Context, now time.Time) (int, error) {
	posts, err := s.pr.ListDueScheduled(ctx, now.Add(-overdueGrace))
	if err != nil {
		return 0, err
	}

	reopened := 0
	for _, post := range posts {
		if err := s.OpenForPost(ctx, post.ID); err != nil {
			slog.Info(err.Error())
			continue
		}
		reopened++
	}

	return reopened, nil
}

func (s *taskService) checkWorker(ctx context.Context, userID, workerID int64) (*models.Worker, error) {
	if workerID == 0 {
		err := errors.New("worker_id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	isValid, err := s.wr.CheckByUserID(ctx, workerID, userID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		err = errors.New("worker doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	worker, err := s.wr.GetByID(ctx, workerID)
	if err != nil || worker == nil {
		return nil, fmt.Errorf("error loading worker %d", workerID)
	}
	if worker.Status != models.WorkerStatusActive {
		err = errors.New("worker is suspended")
		slog.Info(err.Error())
		return nil, err
	}

	return worker, nil
}
