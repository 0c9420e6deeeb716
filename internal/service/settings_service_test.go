package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipflow/internal/models"
	"clipflow/internal/transfer"
)

func TestSettingsService_GetReturnsDefaults(t *testing.T) {
	sr := newFakeSettingsRepo()
	svc := NewSettingsService(sr)

	settings, err := svc.GetSettingsInfo(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "general", settings.Persona)
	assert.Equal(t, 3, settings.VideosPerDay)
	assert.Equal(t, models.ModeSolo, settings.Mode)
}

func TestSettingsService_UpdateCreatesOnFirstWrite(t *testing.T) {
	sr := newFakeSettingsRepo()
	svc := NewSettingsService(sr)

	err := svc.UpdateSettings(context.Background(), 7, &transfer.SettingsUpdate{
		Persona:     "night_owl",
		CustomHours: []int{8, 20},
	})
	require.NoError(t, err)

	saved := sr.settings[7]
	require.NotNil(t, saved)
	assert.Equal(t, "night_owl", saved.Persona)
	assert.Equal(t, "8,20", saved.CustomHours)
	// Untouched fields keep the defaults.
	assert.Equal(t, 3, saved.VideosPerDay)
	assert.Equal(t, models.ModeSolo, saved.Mode)
}

func TestSettingsService_UpdateMergesPartial(t *testing.T) {
	sr := newFakeSettingsRepo()
	sr.settings[7] = &models.Settings{
		UserID:       7,
		Persona:      "student",
		VideosPerDay: 5,
		Mode:         models.ModeNetwork,
	}
	svc := NewSettingsService(sr)

	err := svc.UpdateSettings(context.Background(), 7, &transfer.SettingsUpdate{
		VideosPerDay: 2,
	})
	require.NoError(t, err)

	saved := sr.settings[7]
	assert.Equal(t, 2, saved.VideosPerDay)
	assert.Equal(t, "student", saved.Persona)
	assert.Equal(t, models.ModeNetwork, saved.Mode)
}

func TestSettingsService_UpdateRejectsInvalid(t *testing.T) {
	sr := newFakeSettingsRepo()
	svc := NewSettingsService(sr)

	err := svc.UpdateSettings(context.Background(), 7, &transfer.SettingsUpdate{
		Persona: "astronaut",
	})
	assert.Error(t, err)

	err = svc.UpdateSettings(context.Background(), 7, &transfer.SettingsUpdate{
		CustomHours: []int{25},
	})
	assert.Error(t, err)
}
