package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/sirupsen/logrus"
)

// MaxSubscriptionRadiusMeters - верхняя граница радиуса подписки
const MaxSubscriptionRadiusMeters = 50000

// SubscriptionRepository определяет контракт для работы с бд подписок
type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *models.Subscription) error
	GetByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	DeleteByUserID(ctx context.Context, userID string) error
	ListAll(ctx context.Context) ([]*models.Subscription, error)
}

// SubscriptionService определяет контракт управления подписками пользователей
type SubscriptionService interface {
	Subscribe(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	Unsubscribe(ctx context.Context, userID string) error
}

type subscriptionService struct {
	repo   SubscriptionRepository
	logger *logrus.Logger
}

func NewSubscriptionService(repo SubscriptionRepository, logger *logrus.Logger) SubscriptionService {
	return &subscriptionService{
		repo:   repo,
		logger: logger,
	}
}

// Subscribe создаёт подписку или заменяет существующую подписку пользователя
func (s *subscriptionService) Subscribe(ctx context.Context, sub *models.Subscription) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "subscription",
		"method":  "Subscribe",
		"user_id": sub.UserID,
	})

	if err := validateSubscription(sub); err != nil {
		log.WithError(err).Warn("Rejected invalid subscription")
		return err
	}

	if err := s.repo.Upsert(ctx, sub); err != nil {
		log.WithError(err).Error("Failed to upsert subscription in repository")
		return fmt.Errorf("service: could not save subscription: %w", err)
	}

	log.WithField("radius_m", sub.RadiusMeters).Info("Subscription saved successfully")
	return nil
}

// GetSubscription возвращает подписку пользователя
func (s *subscriptionService) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("service: subscription for user %s: %w", userID, ErrNotFound)
		}
		s.logger.WithFields(logrus.Fields{
			"service": "subscription",
			"method":  "GetSubscription",
			"user_id": userID,
		}).WithError(err).Error("Failed to get subscription in repository")
		return nil, fmt.Errorf("service: could not get subscription: %w", err)
	}
	return sub, nil
}

// Unsubscribe удаляет подписку пользователя
func (s *subscriptionService) Unsubscribe(ctx context.Context, userID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "subscription",
		"method":  "Unsubscribe",
		"user_id": userID,
	})

	if err := s.repo.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("service: subscription for user %s: %w", userID, ErrNotFound)
		}
		log.WithError(err).Error("Failed to delete subscription in repository")
		return fmt.Errorf("service: could not delete subscription: %w", err)
	}

	log.Info("Subscription deleted successfully")
	return nil
}

func validateSubscription(sub *models.Subscription) error {
	switch {
	case sub.UserID == "":
		return &ValidationError{Field: "user_id", Constraint: "is required"}
	case sub.CenterLat < -90 || sub.CenterLat > 90:
		return &ValidationError{Field: "center_lat", Constraint: "must be between -90 and 90"}
	case sub.CenterLng < -180 || sub.CenterLng > 180:
		return &ValidationError{Field: "center_lng", Constraint: "must be between -180 and 180"}
	case !(sub.RadiusMeters > 0) || sub.RadiusMeters > MaxSubscriptionRadiusMeters:
		return &ValidationError{Field: "radius_m", Constraint: fmt.Sprintf("must be in (0, %d]", MaxSubscriptionRadiusMeters)}
	}
	return nil
}
