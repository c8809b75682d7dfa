package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
	"github.com/m04kA/SMC-TenantBookingService/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Service, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockRepo) ListActiveByTenant(ctx context.Context, tenantID int64) ([]*domain.Service, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Service), args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, svc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, svc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) InvalidateTenant(ctx context.Context, tenantID int64) error {
	return m.Called(ctx, tenantID).Error(0)
}

func newService() (*Service, *mockRepo, *mockCache) {
	repo := new(mockRepo)
	cache := new(mockCache)
	return NewService(repo, cache, logger.Nop()), repo, cache
}

func haircut() *domain.Service {
	return &domain.Service{ID: 3, TenantID: 1, Name: "Pánský střih", DurationMinutes: 30, Price: 350, Active: true}
}

func TestService_ListActive(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("ListActiveByTenant", ctx, int64(1)).Return([]*domain.Service{haircut()}, nil).Once()
	resp, err := svc.ListActive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, 30, resp.Services[0].DurationMinutes)

	repo.On("ListActiveByTenant", ctx, int64(2)).Return([]*domain.Service{}, nil).Once()
	resp, err = svc.ListActive(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, resp.Services)
	assert.Empty(t, resp.Services)
}

func TestService_GetActive(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1), int64(3)).Return(haircut(), nil).Once()
	got, err := svc.GetActive(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)

	inactive := haircut()
	inactive.Active = false
	repo.On("GetByID", ctx, int64(1), int64(4)).Return(inactive, nil).Once()
	_, err = svc.GetActive(ctx, 1, 4)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	repo.On("GetByID", ctx, int64(1), int64(5)).Return(nil, serviceRepo.ErrServiceNotFound).Once()
	_, err = svc.GetActive(ctx, 1, 5)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	repo.On("GetByID", ctx, int64(1), int64(6)).Return(nil, errors.New("db down")).Once()
	_, err = svc.GetActive(ctx, 1, 6)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Create(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(s *domain.Service) bool {
		return s.Name == "Masáž" && s.Active && s.DurationMinutes == 90
	})).Return(&domain.Service{ID: 8, TenantID: 1, Name: "Masáž", DurationMinutes: 90, Price: 1200, Active: true}, nil).Once()

	resp, err := svc.Create(ctx, &models.CreateServiceRequest{TenantID: 1, Name: " Masáž ", DurationMinutes: 90, Price: 1200})
	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.ID)
	repo.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{"empty name", models.CreateServiceRequest{Name: "  ", DurationMinutes: 30}},
		{"zero duration", models.CreateServiceRequest{Name: "A", DurationMinutes: 0}},
		{"longer than a day", models.CreateServiceRequest{Name: "A", DurationMinutes: 1441}},
		{"negative price", models.CreateServiceRequest{Name: "A", DurationMinutes: 30, Price: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()
			req := tt.req
			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update(t *testing.T) {
	t.Run("DurationChangeInvalidatesCache", func(t *testing.T) {
		svc, repo, cache := newService()
		ctx := context.Background()

		repo.On("GetByID", ctx, int64(1), int64(3)).Return(haircut(), nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(s *domain.Service) bool {
			return s.DurationMinutes == 45 && s.Price == 350
		})).Return(&domain.Service{ID: 3, TenantID: 1, Name: "Pánský střih", DurationMinutes: 45, Price: 350, Active: true}, nil).Once()
		cache.On("InvalidateTenant", ctx, int64(1)).Return(nil).Once()

		resp, err := svc.Update(ctx, 1, 3, &models.UpdateServiceRequest{DurationMinutes: ptr.Ptr(45)})
		require.NoError(t, err)
		assert.Equal(t, 45, resp.DurationMinutes)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("PriceChangeKeepsCache", func(t *testing.T) {
		svc, repo, cache := newService()
		ctx := context.Background()

		repo.On("GetByID", ctx, int64(1), int64(3)).Return(haircut(), nil).Once()
		updated := haircut()
		updated.Price = 400
		repo.On("Update", ctx, mock.Anything).Return(updated, nil).Once()

		_, err := svc.Update(ctx, 1, 3, &models.UpdateServiceRequest{Price: ptr.Ptr(400.0)})
		require.NoError(t, err)
		cache.AssertNotCalled(t, "InvalidateTenant", mock.Anything, mock.Anything)
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("GetByID", mock.Anything, int64(1), int64(3)).Return(haircut(), nil).Once()

		_, err := svc.Update(context.Background(), 1, 3, &models.UpdateServiceRequest{DurationMinutes: ptr.Ptr(0)})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("GetByID", mock.Anything, int64(2), int64(3)).Return(nil, serviceRepo.ErrServiceNotFound).Once()

		_, err := svc.Update(context.Background(), 2, 3, &models.UpdateServiceRequest{})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}
