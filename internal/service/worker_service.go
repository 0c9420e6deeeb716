package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "clipflow/configs"
	"clipflow/internal/models"
	"clipflow/internal/repository"
	"clipflow/internal/transfer"
	"clipflow/pkg/utils"
)

type WorkerService interface {
	Register(ctx context.Context, userID int64, reg *transfer.WorkerRegistration) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Worker, error)
	Heartbeat(ctx context.Context, userID, workerID int64) error
	SetStatus(ctx context.Context, userID, workerID int64, status string) error
	Remove(ctx context.Context, userID, workerID int64) error
}

type workerService struct {
	cfg config.Config
	wr  repository.WorkerRepository
}

func NewWorkerService(cfg config.Config, wr repository.WorkerRepository) WorkerService {
	return &workerService{
		cfg: cfg,
		wr:  wr,
	}
}

func (s *workerService) Register(ctx context.Context, userID int64, reg *transfer.WorkerRegistration) (int64, error) {
	if reg == nil {
		err := errors.New("worker registration data is nil")
		slog.Error(err.Error())
		return 0, err
	}

	if err := validate.Struct(reg); err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("invalid worker registration: %w", err)
	}

	// The platform session token never touches the database in the clear.
	encryptedToken, err := utils.Encrypt([]byte(reg.SessionToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return 0, err
	}

	worker := models.Worker{
		UserID:         userID,
		DeviceName:     reg.DeviceName,
		PlatformHandle: reg.PlatformHandle,
		SessionToken:   encryptedToken,
		Status:         models.WorkerStatusActive,
		LastSeenAt:     time.Now(),
	}

	workerID, err := s.wr.Create(ctx, nil, &worker)
	if err != nil {
		return 0, err
	}

	return workerID, nil
}

func (s *workerService) List(ctx context.Context, userID int64) ([]*models.Worker, error) {
	workers, err := s.wr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing workers")
	}
	return workers, nil
}

func (s *workerService) Heartbeat(ctx context.Context, userID, workerID int64) error {
	if err := s.checkOwnership(ctx, workerID, userID); err != nil {
		return err
	}
	return s.wr.Touch(ctx, workerID, time.Now())
}

func (s *workerService) SetStatus(ctx context.Context, userID, workerID int64, status string) error {
	if status != models.WorkerStatusActive && status != models.WorkerStatusSuspended {
		err := fmt.Errorf("unknown worker status %s", status)
		slog.Info(err.Error())
		return err
	}

	if err := s.checkOwnership(ctx, workerID, userID); err != nil {
		return err
	}
	return s.wr.SetStatus(ctx, workerID, status)
}

func (s *workerService) Remove(ctx context.Context, userID, workerID int64) error {
	if err := s.checkOwnership(ctx, workerID, userID); err != nil {
		return err
	}
	return s.wr.Remove(ctx, workerID)
}

func (s *workerService) checkOwnership(ctx context.Context, workerID, userID int64) error {
	if workerID == 0 {
		err := errors.New("worker_id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.wr.CheckByUserID(ctx, workerID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		err = errors.New("worker doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return nil
}
