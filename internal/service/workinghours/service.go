package workinghours

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/workinghours/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// Service сервис для работы с рабочими часами тенанта
type Service struct {
	repo         WorkingHoursRepository
	cache        SlotsCache
	txManager    TransactionManager
	defaultOpen  types.TimeString
	defaultClose types.TimeString
	logger       Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
// defaultOpen/defaultClose используются для будних дней в ApplyDefaults
func NewService(
	repo WorkingHoursRepository,
	cache SlotsCache,
	txManager TransactionManager,
	defaultOpen, defaultClose types.TimeString,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		txManager:    txManager,
		defaultOpen:  defaultOpen,
		defaultClose: defaultClose,
		logger:       logger,
	}
}

// List возвращает рабочие часы на все дни недели
func (s *Service) List(ctx context.Context, tenantID int64) (*models.WeekResponse, error) {
	s.logger.Info("List: fetching working hours for tenant=%d", tenantID)

	hours, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(tenantID, hours), nil
}

// Upsert устанавливает рабочие часы на день недели
// Закрытый день тоже хранит время, чтобы при повторном открытии не вводить его заново
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Upsert: tenant=%d weekday=%d open=%v %s-%s",
		req.TenantID, req.Weekday, req.IsOpen, req.OpenTime, req.CloseTime)

	// 1. Валидируем входные данные
	if !domain.IsValidWeekday(req.Weekday) {
		s.logger.Warn("Upsert: invalid weekday=%d", req.Weekday)
		return nil, ErrInvalidWeekday
	}

	openTime, closeTime, err := parseWindow(req.OpenTime, req.CloseTime)
	if err != nil {
		s.logger.Warn("Upsert: invalid window for tenant=%d weekday=%d: %v", req.TenantID, req.Weekday, err)
		return nil, err
	}

	// 2. Сохраняем
	saved, err := s.repo.Upsert(ctx, &domain.WorkingHours{
		TenantID:  req.TenantID,
		Weekday:   time.Weekday(req.Weekday),
		IsOpen:    req.IsOpen,
		OpenTime:  openTime,
		CloseTime: closeTime,
	})
	if err != nil {
		s.logger.Error("Upsert: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	// 3. Рабочие часы влияют на все даты этого дня недели
	s.invalidate(ctx, "Upsert", req.TenantID)

	s.logger.Info("Upsert: working hours id=%d saved for tenant=%d", saved.ID, req.TenantID)
	resp := models.FromDomainWorkingHours(saved)
	return &resp, nil
}

// ApplyDefaults заполняет неделю значениями по умолчанию
// Пн-Пт по конфигурации, Сб 10:00-16:00, Вс закрыто
func (s *Service) ApplyDefaults(ctx context.Context, tenantID int64) (*models.WeekResponse, error) {
	s.logger.Info("ApplyDefaults: seeding default week for tenant=%d", tenantID)

	week := domain.DefaultWeek(tenantID, s.defaultOpen, s.defaultClose)
	saved := make([]*domain.WorkingHours, 0, len(week))

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, wh := range week {
			res, err := s.repo.Upsert(txCtx, wh)
			if err != nil {
				return fmt.Errorf("weekday=%d: %w", wh.Weekday, err)
			}
			saved = append(saved, res)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ApplyDefaults: failed for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ApplyDefaults - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "ApplyDefaults", tenantID)

	return models.FromDomainWeek(tenantID, saved), nil
}

func (s *Service) invalidate(ctx context.Context, op string, tenantID int64) {
	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		s.logger.Warn("%s: failed to invalidate slots cache for tenant=%d: %v", op, tenantID, err)
	}
}

func parseWindow(open, closeStr string) (types.TimeString, types.TimeString, error) {
	openTime, err := types.NewTimeStringFromString(open)
	if err != nil {
		return "", "", fmt.Errorf("%w: openTime: %v", ErrInvalidTime, err)
	}
	closeTime, err := types.NewTimeStringFromString(closeStr)
	if err != nil {
		return "", "", fmt.Errorf("%w: closeTime: %v", ErrInvalidTime, err)
	}
	if !openTime.IsBefore(closeTime) {
		return "", "", fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidTime)
	}
	return openTime, closeTime, nil
}
