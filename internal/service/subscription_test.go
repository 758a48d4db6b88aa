package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSubscriptionService(t *testing.T) (SubscriptionService, *mocks.MockSubscriptionRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockSubscriptionRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewSubscriptionService(repoMock, logger), repoMock
}

func TestSubscribe_Success(t *testing.T) {
	service, repoMock := newTestSubscriptionService(t)
	ctx := context.Background()
	sub := &models.Subscription{UserID: "user-1", CenterLat: -6.2, CenterLng: 106.8, RadiusMeters: 2500}

	repoMock.EXPECT().Upsert(ctx, sub).Return(nil).Times(1)

	require.NoError(t, service.Subscribe(ctx, sub))
}

func TestSubscribe_Validation(t *testing.T) {
	cases := []struct {
		name  string
		sub   models.Subscription
		field string
	}{
		{name: "missing user", sub: models.Subscription{CenterLat: 1, CenterLng: 1, RadiusMeters: 10}, field: "user_id"},
		{name: "latitude", sub: models.Subscription{UserID: "u", CenterLat: -90.5, RadiusMeters: 10}, field: "center_lat"},
		{name: "longitude", sub: models.Subscription{UserID: "u", CenterLng: 180.1, RadiusMeters: 10}, field: "center_lng"},
		{name: "zero radius", sub: models.Subscription{UserID: "u", RadiusMeters: 0}, field: "radius_m"},
		{name: "radius too large", sub: models.Subscription{UserID: "u", RadiusMeters: 50001}, field: "radius_m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, repoMock := newTestSubscriptionService(t)
			repoMock.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

			sub := tc.sub
			err := service.Subscribe(context.Background(), &sub)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestGetSubscription_NotFound(t *testing.T) {
	service, repoMock := newTestSubscriptionService(t)
	ctx := context.Background()

	repoMock.EXPECT().GetByUserID(ctx, "ghost").Return(nil, ErrNotFound).Times(1)

	sub, err := service.GetSubscription(ctx, "ghost")

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnsubscribe(t *testing.T) {
	service, repoMock := newTestSubscriptionService(t)
	ctx := context.Background()

	repoMock.EXPECT().DeleteByUserID(ctx, "user-1").Return(nil).Times(1)
	repoMock.EXPECT().DeleteByUserID(ctx, "user-2").Return(errors.New("connection refused")).Times(1)

	require.NoError(t, service.Unsubscribe(ctx, "user-1"))

	err := service.Unsubscribe(ctx, "user-2")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "could not delete subscription")
}
