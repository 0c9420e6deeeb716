package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipflow/internal/models"
	"clipflow/internal/scheduler"
	"clipflow/internal/transfer"
)

type fakeSubscriptionService struct {
	active bool
}

func (f *fakeSubscriptionService) HandleSubscription(ctx context.Context, payload *transfer.SubscriptionEvent) error {
	return nil
}

func (f *fakeSubscriptionService) IsActive(ctx context.Context, userID int64) (bool, error) {
	return f.active, nil
}

type batchServiceFixture struct {
	svc  BatchService
	mock sqlmock.Sqlmock
	pr   *fakePostRepo
	ma   *fakeAssetRepo
	sr   *fakeSettingsRepo
	sub  *fakeSubscriptionService
}

func newBatchServiceFixture(t *testing.T) *batchServiceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &batchServiceFixture{
		mock: mock,
		pr:   newFakePostRepo(),
		ma:   newFakeAssetRepo(),
		sr:   newFakeSettingsRepo(),
		sub:  &fakeSubscriptionService{},
	}
	f.svc = NewBatchService(db, scheduler.New(scheduler.DefaultConfig()), f.pr, f.ma, f.sr, f.sub)
	return f
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestBatchService_Preview(t *testing.T) {
	f := newBatchServiceFixture(t)

	preview, err := f.svc.Preview(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{10, 11, 12, 13, 14, 15},
		StartDate:    futureDate(),
		VideosPerDay: 3,
		CustomHours:  []int{9, 13, 18},
	})
	require.NoError(t, err)

	assert.Len(t, preview.Slots, 6)
	assert.Equal(t, 2, preview.TotalDays)
	assert.Equal(t, string(scheduler.QualityOptimal), preview.Quality)
	assert.Empty(t, preview.Warning)

	for i, slot := range preview.Slots {
		assert.Equal(t, i, slot.VideoIndex)
		assert.Equal(t, int64(10+i), slot.AssetID)
		assert.NotEmpty(t, slot.DisplayTime)
	}
}

func TestBatchService_Preview_DegradedWarns(t *testing.T) {
	f := newBatchServiceFixture(t)

	preview, err := f.svc.Preview(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{1, 2, 3, 4, 5, 6, 7, 8},
		StartDate:    futureDate(),
		VideosPerDay: 8,
		CustomHours:  []int{9, 10, 11},
	})
	require.NoError(t, err)

	assert.NotEqual(t, string(scheduler.QualityOptimal), preview.Quality)
	assert.NotEmpty(t, preview.Warning)
}

func TestBatchService_Preview_InvalidRequest(t *testing.T) {
	f := newBatchServiceFixture(t)

	_, err := f.svc.Preview(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{},
		StartDate:    futureDate(),
		VideosPerDay: 3,
	})
	assert.Error(t, err)

	_, err = f.svc.Preview(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{1},
		StartDate:    "10-03-2026",
		VideosPerDay: 3,
	})
	assert.Error(t, err)
}

func TestBatchService_Create(t *testing.T) {
	f := newBatchServiceFixture(t)

	for i := int64(10); i <= 12; i++ {
		f.ma.assets[i] = &models.MediaAsset{ID: i, UserID: 7}
	}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	created, delays, err := f.svc.Create(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{10, 11, 12},
		Captions:     []string{"a", "b", "c"},
		StartDate:    futureDate(),
		VideosPerDay: 3,
		CustomHours:  []int{9, 13, 18},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.BatchID)
	require.Len(t, created.PostIDs, 3)
	require.Len(t, delays, 3)

	for i, postID := range created.PostIDs {
		post := f.pr.posts[postID]
		require.NotNil(t, post)
		assert.Equal(t, created.BatchID, post.BatchID)
		assert.Equal(t, i, post.SlotIndex)
		assert.Equal(t, int64(10+i), post.AssetID)
		assert.Equal(t, models.PostStatusScheduled, post.Status)
		assert.GreaterOrEqual(t, delays[i], time.Duration(0))
	}
	assert.Equal(t, "a", f.pr.posts[created.PostIDs[0]].Caption)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestBatchService_Create_UnknownAsset(t *testing.T) {
	f := newBatchServiceFixture(t)

	_, _, err := f.svc.Create(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{99},
		StartDate:    futureDate(),
		VideosPerDay: 1,
	})
	assert.Error(t, err)
}

func TestBatchService_Create_NetworkRequiresSubscription(t *testing.T) {
	f := newBatchServiceFixture(t)

	f.ma.assets[10] = &models.MediaAsset{ID: 10, UserID: 7}
	f.sr.settings[7] = &models.Settings{UserID: 7, Mode: models.ModeNetwork}

	_, _, err := f.svc.Create(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{10},
		StartDate:    futureDate(),
		VideosPerDay: 1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription")

	f.sub.active = true
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	created, _, err := f.svc.Create(context.Background(), 7, &transfer.BatchScheduleRequest{
		AssetIDs:     []int64{10},
		StartDate:    futureDate(),
		VideosPerDay: 1,
	})
	require.NoError(t, err)
	assert.Len(t, created.PostIDs, 1)
}
