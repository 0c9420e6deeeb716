package service

import (
	"context"
	"fmt"
	"log/slog"

	"clipflow/internal/models"
	"clipflow/internal/repository"
	"clipflow/internal/scheduler"
	"clipflow/internal/transfer"
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID int64, update *transfer.SettingsUpdate) error
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

func (s *settingsService) GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error) {
	settings, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !isExist {
		// First read for a new account returns the defaults rather than 404.
		return defaultSettings(userID), nil
	}

	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, update *transfer.SettingsUpdate) error {
	if err := validate.Struct(update); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("invalid settings: %w", err)
	}

	current, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !isExist {
		current = defaultSettings(userID)
	}

	if update.Persona != "" {
		current.Persona = update.Persona
	}
	if update.VideosPerDay > 0 {
		current.VideosPerDay = update.VideosPerDay
	}
	if update.CustomHours != nil {
		current.CustomHours = EncodeHours(update.CustomHours)
	}
	if update.Mode != "" {
		current.Mode = update.Mode
	}

	if !isExist {
		_, err = s.sr.Create(ctx, current)
		return err
	}
	return s.sr.UpdateSettings(ctx, current, userID)
}

func defaultSettings(userID int64) *models.Settings {
	return &models.Settings{
		UserID:       userID,
		Persona:      string(scheduler.PersonaGeneral),
		VideosPerDay: 3,
		CustomHours:  "",
		Mode:         models.ModeSolo,
	}
}
