package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"clipflow/internal/models"
	"clipflow/internal/repository"
	"clipflow/internal/scheduler"
	"clipflow/internal/transfer"
)

var validate = validator.New()

type BatchService interface {
	Preview(ctx context.Context, userID int64, req *transfer.BatchScheduleRequest) (*transfer.SchedulePreview, error)
	Create(ctx context.Context, userID int64, req *transfer.BatchScheduleRequest) (*transfer.BatchCreated, []time.Duration, error)
}

type batchService struct {
	db    *sql.DB
	sched *scheduler.Service
	pr    repository.PostRepository
	ma    repository.MediaAssetRepository
	sr    repository.SettingsRepository
	sub   SubscriptionService
}

func NewBatchService(
	db *sql.DB,
	sched *scheduler.Service,
	pr repository.PostRepository,
	ma repository.MediaAssetRepository,
	sr repository.SettingsRepository,
	sub SubscriptionService) BatchService {
	return &batchService{
		db:    db,
		sched: sched,
		pr:    pr,
		ma:    ma,
		sr:    sr,
		sub:   sub,
	}
}

// Preview recomputes the whole schedule from scratch. The client calls this
// on every parameter edit, so it must stay free of writes.
func (s *batchService) Preview(ctx context.Context, userID int64, req *transfer.BatchScheduleRequest) (*transfer.SchedulePreview, error) {
	res, err := s.computeSchedule(req, time.Now())
	if err != nil {
		return nil, err
	}

	preview := &transfer.SchedulePreview{
		Slots:           make([]transfer.PreviewSlot, 0, len(res.Slots)),
		TotalDays:       res.TotalDays,
		Quality:         string(res.Quality),
		IntervalMinutes: res.IntervalMinutes,
		Warning:         qualityWarning(res.Quality),
	}

	for _, slot := range res.Slots {
		preview.Slots = append(preview.Slots, transfer.PreviewSlot{
			VideoIndex:  slot.VideoIndex,
			AssetID:     req.AssetIDs[slot.VideoIndex],
			ScheduledAt: slot.At,
			DisplayTime: FormatDisplayTime(slot.At),
		})
	}

	return preview, nil
}

// Create persists one post per computed slot and reports the delay until
// each post is due, so the caller can enqueue the publish tasks.
func (s *batchService) Create(ctx context.Context, userID int64, req *transfer.BatchScheduleRequest) (*transfer.BatchCreated, []time.Duration, error) {
	now := time.Now()

	res, err := s.computeSchedule(req, now)
	if err != nil {
		return nil, nil, err
	}

	if err := s.checkAssets(ctx, userID, req.AssetIDs); err != nil {
		return nil, nil, err
	}

	settings, hasSettings, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if hasSettings && settings.Mode == models.ModeNetwork {
		active, err := s.sub.IsActive(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		if !active {
			err = errors.New("network mode requires an active subscription")
			slog.Info(err.Error())
			return nil, nil, err
		}
	}

	batchID, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	postIDs := make([]int64, 0, len(res.Slots))
	delays := make([]time.Duration, 0, len(res.Slots))

	for _, slot := range res.Slots {
		post := models.Post{
			UserID:        userID,
			BatchID:       batchID,
			SlotIndex:     slot.VideoIndex,
			AssetID:       req.AssetIDs[slot.VideoIndex],
			Caption:       fieldAt(req.Captions, slot.VideoIndex),
			Title:         fieldAt(req.Titles, slot.VideoIndex),
			ScheduledTime: slot.At,
			Status:        models.PostStatusScheduled,
		}

		postID, err := s.pr.Create(ctx, tx, &post)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating post: %w", err)
		}

		delay := time.Until(slot.At)
		if delay < 0 {
			delay = 0
		}

		postIDs = append(postIDs, postID)
		delays = append(delays, delay)
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &transfer.BatchCreated{BatchID: batchID, PostIDs: postIDs}, delays, nil
}

func (s *batchService) computeSchedule(req *transfer.BatchScheduleRequest, now time.Time) (*scheduler.Result, error) {
	if req == nil {
		err := errors.New("batch request is nil")
		slog.Error(err.Error())
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("invalid batch request: %w", err)
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, now.Location())
	if err != nil {
		err = fmt.Errorf("invalid start date format: %w", err)
		slog.Info(err.Error())
		return nil, err
	}

	persona := scheduler.Persona(req.Persona)
	if req.Persona == "" {
		persona = scheduler.PersonaGeneral
	}

	res := s.sched.Compute(scheduler.Request{
		VideoCount:   len(req.AssetIDs),
		StartDate:    startDate,
		VideosPerDay: req.VideosPerDay,
		Persona:      persona,
		CustomHours:  req.CustomHours,
		Now:          now,
	})

	return &res, nil
}

func (s *batchService) checkAssets(ctx context.Context, userID int64, assetIDs []int64) error {
	checked := make(map[int64]struct{}, len(assetIDs))
	for _, assetID := range assetIDs {
		if _, done := checked[assetID]; done {
			continue
		}
		checked[assetID] = struct{}{}

		exists, err := s.ma.CheckByUserID(ctx, assetID, userID)
		if err != nil {
			return fmt.Errorf("error checking asset %d: %w", assetID, err)
		}
		if !exists {
			return fmt.Errorf("asset %d does not exist", assetID)
		}
	}
	return nil
}

// qualityWarning translates a degraded grade into the message the preview
// shows. The schedule itself is always returned.
func qualityWarning(q scheduler.Quality) string {
	switch q {
	case scheduler.QualityCompressed:
		return "Posts are packed tighter than the audience peak hours allow. Consider fewer videos per day."
	case scheduler.QualityTight:
		return "Posting interval is very short. Spreading posts over more days is strongly recommended."
	default:
		return ""
	}
}

func fieldAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
