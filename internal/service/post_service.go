package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"clipflow/internal/models"
	"clipflow/internal/repository"
)

type PostService interface {
	List(ctx context.Context, userID int64) ([]*models.Post, error)
	ListByBatch(ctx context.Context, userID int64, batchID string) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
	Cancel(ctx context.Context, userID, postID int64) error
	Remove(ctx context.Context, userID, postID int64) error
}

type postService struct {
	pr repository.PostRepository
}

func NewPostService(pr repository.PostRepository) PostService {
	return &postService{pr: pr}
}

func (s *postService) List(ctx context.Context, userID int64) ([]*models.Post, error) {
	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts")
	}
	return posts, nil
}

func (s *postService) ListByBatch(ctx context.Context, userID int64, batchID string) ([]*models.Post, error) {
	if batchID == "" {
		err := errors.New("batch_id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	posts, err := s.pr.GetByBatchID(ctx, userID, batchID)
	if err != nil {
		return nil, fmt.Errorf("error listing batch posts")
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if err := s.checkOwnership(ctx, postID, userID); err != nil {
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info")
	}

	return post, nil
}

// Cancel marks a not-yet-published post as cancelled. The queue handler
// checks the status before opening a task, so the pending asynq task
// becomes a no-op.
func (s *postService) Cancel(ctx context.Context, userID, postID int64) error {
	if err := s.checkOwnership(ctx, postID, userID); err != nil {
		return err
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.Status != models.PostStatusScheduled && post.Status != models.PostStatusNeedsAction {
		err = fmt.Errorf("post in status %s cannot be cancelled", post.Status)
		slog.Info(err.Error())
		return err
	}

	return s.pr.UpdateStatus(ctx, nil, postID, models.PostStatusCancelled, "")
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	if err := s.checkOwnership(ctx, postID, userID); err != nil {
		return err
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post")
	}

	return nil
}

func (s *postService) checkOwnership(ctx context.Context, postID, userID int64) error {
	if userID == 0 {
		err := errors.New("user is not valid")
		slog.Info(err.Error())
		return err
	}

	if postID == 0 {
		err := errors.New("post_id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if !isValid {
		err = errors.New("post doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return nil
}
