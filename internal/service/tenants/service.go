package tenants

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants/models"
)

// Service сервис для работы с тенантами
type Service struct {
	repo   TenantRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса тенантов
func NewService(repo TenantRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetBySlug получает тенанта по slug
// Публичный метод - страница бронирования открывается по slug
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.TenantResponse, error) {
	s.logger.Info("GetBySlug: fetching tenant slug=%q", slug)

	tenant, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.mapRepoError("GetBySlug", err)
	}

	return models.FromDomainTenant(tenant), nil
}

// GetByID получает тенанта по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TenantResponse, error) {
	s.logger.Info("GetByID: fetching tenant id=%d", id)

	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}

	return models.FromDomainTenant(tenant), nil
}

// UpdateCategoryData сохраняет настройки категории
// Категорию сменить нельзя: данные должны соответствовать текущей категории тенанта
func (s *Service) UpdateCategoryData(ctx context.Context, id int64, data *domain.CategoryData) (*models.TenantResponse, error) {
	s.logger.Info("UpdateCategoryData: tenant id=%d", id)

	if data == nil {
		return nil, fmt.Errorf("%w: categoryData is required", ErrInvalidInput)
	}

	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("UpdateCategoryData", err)
	}

	if data.Category != tenant.Category {
		s.logger.Warn("UpdateCategoryData: tenant id=%d has category %s, got %s", id, tenant.Category, data.Category)
		return nil, ErrCategoryMismatch
	}

	if err := data.Validate(); err != nil {
		s.logger.Warn("UpdateCategoryData: invalid data for tenant id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.UpdateCategoryData(ctx, id, data); err != nil {
		return nil, s.mapRepoError("UpdateCategoryData", err)
	}

	tenant.CategoryData = data
	s.logger.Info("UpdateCategoryData: tenant id=%d updated", id)
	return models.FromDomainTenant(tenant), nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, tenantRepo.ErrTenantNotFound) {
		s.logger.Warn("%s: tenant not found", op)
		return ErrTenantNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
