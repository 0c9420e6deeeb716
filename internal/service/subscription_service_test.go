package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "clipflow/configs"
	"clipflow/internal/models"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	u, ok := f.users[email]
	return u, ok, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	user.ID = int64(len(f.users) + 1)
	f.users[user.Email] = user
	return user.ID, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	return nil
}

func (f *fakeUserRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type fakeSubscriptionRepo struct {
	byUser map[int64]*models.Subscription
}

func (f *fakeSubscriptionRepo) GetByUserID(ctx context.Context, id int64) (*models.Subscription, bool, error) {
	s, ok := f.byUser[id]
	return s, ok, nil
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) (int64, error) {
	f.byUser[subscription.UserID] = subscription
	return 1, nil
}

func (f *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, subscription *models.Subscription) error {
	f.byUser[subscription.UserID] = subscription
	return nil
}

func TestSubscriptionService_IsActive(t *testing.T) {
	ur := &fakeUserRepo{users: map[string]*models.User{}}
	sr := &fakeSubscriptionRepo{byUser: map[int64]*models.Subscription{}}
	svc := NewSubscriptionService(config.Config{}, ur, sr)

	// No subscription at all.
	active, err := svc.IsActive(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, active)

	// Active and unexpired.
	sr.byUser[7] = &models.Subscription{
		UserID:              7,
		Status:              "active",
		SubscriptionEndDate: time.Now().Add(24 * time.Hour),
	}
	active, err = svc.IsActive(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, active)

	// Lapsed period.
	sr.byUser[7].SubscriptionEndDate = time.Now().Add(-time.Hour)
	active, err = svc.IsActive(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, active)

	// Cancelled status.
	sr.byUser[7].SubscriptionEndDate = time.Now().Add(24 * time.Hour)
	sr.byUser[7].Status = "canceled"
	active, err = svc.IsActive(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, active)
}
