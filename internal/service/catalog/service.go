package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/service"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/catalog/models"
)

// Service каталог услуг тенанта
type Service struct {
	repo   ServiceRepository
	cache  SlotsCache
	logger Logger
}

// NewService создает новый экземпляр каталога услуг
func NewService(repo ServiceRepository, cache SlotsCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListActive возвращает активные услуги тенанта, отсортированные по названию
func (s *Service) ListActive(ctx context.Context, tenantID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListActive: fetching services for tenant=%d", tenantID)

	list, err := s.repo.ListActiveByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListActive: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(list), nil
}

// GetActive возвращает активную услугу тенанта
// Неактивная услуга для публичных сценариев не существует
func (s *Service) GetActive(ctx context.Context, tenantID, id int64) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetActive: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	if !svc.Active {
		s.logger.Warn("GetActive: service id=%d of tenant=%d is inactive", id, tenantID)
		return nil, ErrServiceNotFound
	}

	return svc, nil
}

// Create создает услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: tenant=%d name=%q duration=%d", req.TenantID, req.Name, req.DurationMinutes)

	svc := &domain.Service{
		TenantID:        req.TenantID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Description:     req.Description,
		Active:          req.Active == nil || *req.Active,
	}

	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d created for tenant=%d", created.ID, req.TenantID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу
// Новая длительность действует только для новых бронирований
func (s *Service) Update(ctx context.Context, tenantID, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: service id=%d tenant=%d", id, tenantID)

	// 1. Получаем текущую услугу
	current, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения к копии и валидируем
	updated := *current
	req.ApplyTo(&updated)
	updated.Name = strings.TrimSpace(updated.Name)

	if err := validateService(&updated); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.repo.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 4. Длительность и активность меняют сетку слотов на всех датах
	if current.DurationMinutes != saved.DurationMinutes || current.Active != saved.Active {
		if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
			s.logger.Warn("Update: failed to invalidate slots cache for tenant=%d: %v", tenantID, err)
		}
	}

	return models.FromDomainService(saved), nil
}

func validateService(svc *domain.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(svc.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if svc.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
