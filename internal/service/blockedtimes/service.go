package blockedtimes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	blockedTimeRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/blockedtime"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/blockedtimes/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// Service сервис блокировок времени (отпуск, праздники, техперерыв)
type Service struct {
	repo   BlockedTimeRepository
	cache  SlotsCache
	logger Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo BlockedTimeRepository, cache SlotsCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListByDate возвращает блокировки тенанта на дату
func (s *Service) ListByDate(ctx context.Context, tenantID int64, date time.Time) (*models.BlockedTimeListResponse, error) {
	s.logger.Info("ListByDate: tenant=%d date=%s", tenantID, date.Format(domain.DateFormat))

	list, err := s.repo.ListByTenantAndDate(ctx, tenantID, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedTimeList(list), nil
}

// Create создает блокировку на весь день или на интервал [startTime, endTime)
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedTimeResponse, error) {
	s.logger.Info("Create: tenant=%d date=%s start=%v end=%v", req.TenantID, req.Date, req.StartTime, req.EndTime)

	// 1. Валидируем входные данные
	bt, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.repo.Create(ctx, bt)
	if err != nil {
		s.logger.Error("Create: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	// 3. Слоты этой даты больше не актуальны
	s.invalidate(ctx, "Create", req.TenantID, created.Date)

	s.logger.Info("Create: blocked time id=%d created for tenant=%d", created.ID, req.TenantID)
	resp := models.FromDomainBlockedTime(created)
	return &resp, nil
}

// Delete удаляет блокировку тенанта
func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("Delete: blocked time id=%d tenant=%d", id, tenantID)

	date, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, blockedTimeRepo.ErrBlockedTimeNotFound) {
			s.logger.Warn("Delete: blocked time id=%d not found for tenant=%d", id, tenantID)
			return ErrBlockedTimeNotFound
		}
		s.logger.Error("Delete: repository error for blocked time id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Delete", tenantID, date)
	return nil
}

func (s *Service) invalidate(ctx context.Context, op string, tenantID int64, date time.Time) {
	if err := s.cache.Invalidate(ctx, tenantID, date); err != nil {
		s.logger.Warn("%s: failed to invalidate slots cache for tenant=%d: %v", op, tenantID, err)
	}
}

func toDomain(req *models.CreateRequest) (*domain.BlockedTime, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	bt := &domain.BlockedTime{TenantID: req.TenantID, Date: date}
	if req.Reason != nil {
		if reason := strings.TrimSpace(*req.Reason); reason != "" {
			bt.Reason = &reason
		}
	}

	// Весь день
	if req.StartTime == nil && req.EndTime == nil {
		return bt, nil
	}
	if req.StartTime == nil || req.EndTime == nil {
		return nil, fmt.Errorf("%w: startTime and endTime must be set together", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(*req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(*req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	bt.StartTime = &start
	bt.EndTime = &end
	return bt, nil
}
