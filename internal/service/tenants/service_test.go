package tenants

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-TenantBookingService/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *mockRepo) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *mockRepo) UpdateCategoryData(ctx context.Context, id int64, data *domain.CategoryData) error {
	return m.Called(ctx, id, data).Error(0)
}

func barbershop() *domain.Tenant {
	return &domain.Tenant{ID: 7, Slug: "salon-jana", Name: "Salon Jana", Category: domain.CategoryBarbershop}
}

func TestService_GetBySlug(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, logger.Nop())
	ctx := context.Background()

	repo.On("GetBySlug", ctx, "salon-jana").Return(barbershop(), nil).Once()
	resp, err := svc.GetBySlug(ctx, "salon-jana")
	require.NoError(t, err)
	assert.Equal(t, "Kadeřnictví/Barbershop", resp.CategoryLabel)
	require.NotNil(t, resp.CategoryData, "defaults are served when nothing is stored")
	assert.Equal(t, 3, resp.CategoryData.Barbershop.ChairCount)

	repo.On("GetBySlug", ctx, "nope").Return(nil, tenantRepo.ErrTenantNotFound).Once()
	_, err = svc.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrTenantNotFound)

	repo.On("GetBySlug", ctx, "broken").Return(nil, errors.New("db down")).Once()
	_, err = svc.GetBySlug(ctx, "broken")
	assert.ErrorIs(t, err, ErrInternal)

	repo.AssertExpectations(t)
}

func TestService_UpdateCategoryData(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, logger.Nop())

		data := &domain.CategoryData{
			Category:   domain.CategoryBarbershop,
			Barbershop: &domain.BarbershopData{ChairCount: 5, Stylists: []domain.Staff{{ID: "s1", Name: "Jana"}}},
		}
		repo.On("GetByID", ctx, int64(7)).Return(barbershop(), nil).Once()
		repo.On("UpdateCategoryData", ctx, int64(7), data).Return(nil).Once()

		resp, err := svc.UpdateCategoryData(ctx, 7, data)
		require.NoError(t, err)
		assert.Equal(t, 5, resp.CategoryData.Barbershop.ChairCount)
		repo.AssertExpectations(t)
	})

	t.Run("CategoryMismatch", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, logger.Nop())

		repo.On("GetByID", ctx, int64(7)).Return(barbershop(), nil).Once()
		_, err := svc.UpdateCategoryData(ctx, 7, domain.DefaultCategoryData(domain.CategoryRestaurant))
		assert.ErrorIs(t, err, ErrCategoryMismatch)
		repo.AssertNotCalled(t, "UpdateCategoryData", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidData", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, logger.Nop())

		repo.On("GetByID", ctx, int64(7)).Return(barbershop(), nil).Once()
		_, err := svc.UpdateCategoryData(ctx, 7, &domain.CategoryData{
			Category:   domain.CategoryBarbershop,
			Barbershop: &domain.BarbershopData{ChairCount: 0, Stylists: []domain.Staff{}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Nil", func(t *testing.T) {
		svc := NewService(new(mockRepo), logger.Nop())
		_, err := svc.UpdateCategoryData(ctx, 7, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
