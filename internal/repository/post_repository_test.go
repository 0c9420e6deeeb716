package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipflow/internal/models"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	post := &models.Post{
		UserID:        7,
		BatchID:       "b1",
		SlotIndex:     0,
		AssetID:       42,
		Caption:       "caption",
		Title:         "title",
		ScheduledTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Status:        models.PostStatusScheduled,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs(post.UserID, post.BatchID, post.SlotIndex, post.AssetID, post.Caption, post.Title, post.ScheduledTime, post.Status).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	id, err := repo.Create(context.Background(), nil, post)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "batch_id", "slot_index", "asset_id", "caption", "title",
		"scheduled_time", "status", "error_message", "created_at", "updated_at",
	}).AddRow(3, 7, "b1", 1, 42, "caption", "title", now, models.PostStatusScheduled, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	post, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, int64(3), post.ID)
	assert.Equal(t, "b1", post.BatchID)
	assert.Equal(t, models.PostStatusScheduled, post.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByBatchID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "batch_id", "slot_index", "asset_id", "caption", "title",
		"scheduled_time", "status", "error_message", "created_at", "updated_at",
	}).
		AddRow(1, 7, "b1", 0, 42, "", "", now, models.PostStatusScheduled, "", now, now).
		AddRow(2, 7, "b1", 1, 43, "", "", now, models.PostStatusScheduled, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND batch_id = $2")).
		WithArgs(int64(7), "b1").
		WillReturnRows(rows)

	posts, err := repo.GetByBatchID(context.Background(), 7, "b1")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, 0, posts[0].SlotIndex)
	assert.Equal(t, 1, posts[1].SlotIndex)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts")).
		WithArgs(models.PostStatusFailed, "device unreachable", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStatus(context.Background(), nil, 3, models.PostStatusFailed, "device unreachable")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateStatus_InTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE posts")).
		WithArgs(models.PostStatusCompleted, "", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), tx, 3, models.PostStatusCompleted, "")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListDueScheduled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "batch_id", "slot_index", "asset_id", "caption", "title",
		"scheduled_time", "status", "error_message", "created_at", "updated_at",
	}).AddRow(5, 7, "b1", 0, 42, "", "", now.Add(-time.Hour), models.PostStatusScheduled, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND scheduled_time < $2")).
		WithArgs(models.PostStatusScheduled, now).
		WillReturnRows(rows)

	posts, err := repo.ListDueScheduled(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(5), posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CheckByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM posts WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	ok, err := repo.CheckByUserID(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM posts WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(3), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	ok, err = repo.CheckByUserID(context.Background(), 3, 8)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
