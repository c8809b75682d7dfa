package workinghours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/workinghours/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.WorkingHours, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WorkingHours), args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	args := m.Called(ctx, wh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, *domain.WorkingHours) *domain.WorkingHours); ok {
		return fn(ctx, wh), args.Error(1)
	}
	return args.Get(0).(*domain.WorkingHours), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) InvalidateTenant(ctx context.Context, tenantID int64) error {
	return m.Called(ctx, tenantID).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService() (*Service, *mockRepo, *mockCache) {
	repo := new(mockRepo)
	cache := new(mockCache)
	return NewService(repo, cache, inlineTx{}, "09:00", "17:00", logger.Nop()), repo, cache
}

func TestService_List_FillsMissingDays(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("ListByTenant", ctx, int64(1)).Return([]*domain.WorkingHours{
		{TenantID: 1, Weekday: time.Monday, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
		{TenantID: 1, Weekday: time.Saturday, IsOpen: true, OpenTime: "10:00", CloseTime: "14:00"},
	}, nil).Once()

	resp, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	for i, day := range resp.Days {
		assert.Equal(t, i, day.Weekday, "days are ordered from Sunday")
	}
	assert.False(t, resp.Days[0].IsOpen)
	assert.Nil(t, resp.Days[0].OpenTime)
	assert.True(t, resp.Days[1].IsOpen)
	assert.Equal(t, "17:00", *resp.Days[1].CloseTime)
	assert.False(t, resp.Days[3].IsOpen)
	assert.Equal(t, "10:00", *resp.Days[6].OpenTime)

	repo.AssertExpectations(t)
}

func TestService_List_RepositoryError(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("ListByTenant", mock.Anything, int64(1)).Return(nil, errors.New("db down")).Once()

	_, err := svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Upsert(t *testing.T) {
	svc, repo, cache := newService()
	ctx := context.Background()

	repo.On("Upsert", ctx, mock.MatchedBy(func(wh *domain.WorkingHours) bool {
		return wh.TenantID == 1 && wh.Weekday == time.Tuesday && wh.IsOpen &&
			wh.OpenTime == "08:30" && wh.CloseTime == "24:00"
	})).Return(&domain.WorkingHours{ID: 3, TenantID: 1, Weekday: time.Tuesday, IsOpen: true, OpenTime: "08:30", CloseTime: "24:00"}, nil).Once()
	cache.On("InvalidateTenant", ctx, int64(1)).Return(nil).Once()

	resp, err := svc.Upsert(ctx, &models.UpsertRequest{
		TenantID: 1, Weekday: 2, IsOpen: true, OpenTime: "8:30", CloseTime: "24:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Weekday)
	assert.Equal(t, "08:30", *resp.OpenTime)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Upsert_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpsertRequest
		wantErr error
	}{
		{"weekday too large", models.UpsertRequest{Weekday: 7, OpenTime: "09:00", CloseTime: "17:00"}, ErrInvalidWeekday},
		{"negative weekday", models.UpsertRequest{Weekday: -1, OpenTime: "09:00", CloseTime: "17:00"}, ErrInvalidWeekday},
		{"bad open format", models.UpsertRequest{Weekday: 1, OpenTime: "9h", CloseTime: "17:00"}, ErrInvalidTime},
		{"close after midnight", models.UpsertRequest{Weekday: 1, OpenTime: "09:00", CloseTime: "24:30"}, ErrInvalidTime},
		{"open equals close", models.UpsertRequest{Weekday: 1, OpenTime: "09:00", CloseTime: "09:00"}, ErrInvalidTime},
		{"open after close", models.UpsertRequest{Weekday: 1, OpenTime: "18:00", CloseTime: "09:00"}, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService()
			req := tt.req
			_, err := svc.Upsert(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			cache.AssertNotCalled(t, "InvalidateTenant", mock.Anything, mock.Anything)
		})
	}
}

func TestService_ApplyDefaults(t *testing.T) {
	svc, repo, cache := newService()
	ctx := context.Background()

	repo.On("Upsert", ctx, mock.AnythingOfType("*domain.WorkingHours")).
		Return(func(_ context.Context, wh *domain.WorkingHours) *domain.WorkingHours { return wh }, nil).
		Times(7)
	cache.On("InvalidateTenant", ctx, int64(4)).Return(errors.New("redis down")).Once()

	resp, err := svc.ApplyDefaults(ctx, 4)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	assert.False(t, resp.Days[0].IsOpen)
	assert.Equal(t, "09:00", *resp.Days[1].OpenTime)
	assert.Equal(t, "17:00", *resp.Days[5].CloseTime)
	assert.Equal(t, "16:00", *resp.Days[6].CloseTime)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_ApplyDefaults_RepositoryError(t *testing.T) {
	svc, repo, cache := newService()
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := svc.ApplyDefaults(context.Background(), 4)
	assert.ErrorIs(t, err, ErrInternal)
	cache.AssertNotCalled(t, "InvalidateTenant", mock.Anything, mock.Anything)
}
