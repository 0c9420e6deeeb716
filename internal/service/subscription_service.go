package service

import (
	"context"
	"fmt"
	"time"

	config "clipflow/configs"
	"clipflow/internal/models"
	"clipflow/internal/repository"
	"clipflow/internal/transfer"
)

type SubscriptionService interface {
	HandleSubscription(ctx context.Context, payload *transfer.SubscriptionEvent) error
	IsActive(ctx context.Context, userID int64) (bool, error)
}

type subscriptionService struct {
	cfg config.Config
	u   repository.UserRepository
	s   repository.SubscriptionRepository
}

func NewSubscriptionService(cfg config.Config, u repository.UserRepository, s repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{
		cfg: cfg,
		u:   u,
		s:   s,
	}
}

func (s *subscriptionService) HandleSubscription(ctx context.Context, payload *transfer.SubscriptionEvent) error {

	switch payload.EventType {
	case "subscription.paid":
		customerEmail := payload.Object.Customer.Email

		user, isExist, err := s.u.GetByEmail(ctx, customerEmail)
		if err != nil {
			return fmt.Errorf("fetching user by email failed: %w", err)
		}

		var userID int64
		if !isExist {
			newUser := &models.User{
				Email: customerEmail,
			}
			userID, err = s.u.Create(ctx, nil, newUser)
			if err != nil {
				return err
			}

			subscriptionInfo := &models.Subscription{
				UserID:              userID,
				SubscriptionID:      payload.Object.ID,
				SubscriptionEndDate: payload.Object.CurrentPeriodEndDate,
				Status:              payload.Object.Status,
			}

			_, err = s.s.Create(ctx, subscriptionInfo)
			if err != nil {
				return err
			}
		} else {
			userID = user.ID

			subscriptionInfo := &models.Subscription{
				UserID:              userID,
				SubscriptionID:      payload.Object.ID,
				SubscriptionEndDate: payload.Object.CurrentPeriodEndDate,
				Status:              payload.Object.Status,
			}

			err := s.s.UpdateSubscription(ctx, subscriptionInfo)
			if err != nil {
				return err
			}
		}

	case "subscription.canceled", "subscription.expired":
		customerEmail := payload.Object.Customer.Email

		user, isExist, err := s.u.GetByEmail(ctx, customerEmail)
		if err != nil {
			return fmt.Errorf("fetching user by email failed: %w", err)
		}
		if !isExist {
			return nil
		}

		subscriptionInfo := &models.Subscription{
			UserID:              user.ID,
			SubscriptionID:      payload.Object.ID,
			SubscriptionEndDate: payload.Object.CurrentPeriodEndDate,
			Status:              payload.Object.Status,
		}

		err = s.s.UpdateSubscription(ctx, subscriptionInfo)
		if err != nil {
			return err
		}
	}

	return nil
}

// IsActive reports whether the user holds a subscription that has not
// lapsed. Network mode batches are gated on this.
func (s *subscriptionService) IsActive(ctx context.Context, userID int64) (bool, error) {
	subscription, isExist, err := s.s.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !isExist {
		return false, nil
	}

	if subscription.Status != "active" {
		return false, nil
	}
	if subscription.SubscriptionEndDate.Before(time.Now()) {
		return false, nil
	}

	return true, nil
}
