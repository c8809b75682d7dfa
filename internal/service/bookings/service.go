package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TenantBookingService/internal/availability"
	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/booking"
	workingHoursRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TenantBookingService/pkg/pgerrors"
)

// Service сервис для работы с бронированиями тенанта (админка)
type Service struct {
	bookingRepo      BookingRepository
	workingHoursRepo WorkingHoursRepository
	blockedTimeRepo  BlockedTimeRepository
	cache            SlotsCache
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	workingHoursRepo WorkingHoursRepository,
	blockedTimeRepo BlockedTimeRepository,
	cache SlotsCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		workingHoursRepo: workingHoursRepo,
		blockedTimeRepo:  blockedTimeRepo,
		cache:            cache,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование другого тенанта возвращается как ErrBookingNotFound
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for tenant=%d", id, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListByTenant получает бронирования тенанта с фильтрацией по периоду и статусу
//
// Примеры использования:
// - Все неотмененные бронирования: ListByTenant(ctx, &ListTenantBookingsRequest{TenantID: 7})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только завершенные: Status = "completed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) ListByTenant(ctx context.Context, req *models.ListTenantBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListByTenant: fetching bookings for tenant=%d", req.TenantID)
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", req.StartDate.Format(domain.DateFormat))
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByTenant: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	bookings, err := s.bookingRepo.ListByTenant(ctx, filter)
	if err != nil {
		s.logger.Error("ListByTenant: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListByTenant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTenant: fetched %d bookings for tenant=%d", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования
// Отмена освобождает слот. Повторное подтверждение отмененного бронирования
// повторяет проверки создания под той же блокировкой: рабочие часы, пересечения и блокировки.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d tenant=%d status=%s", id, tenantID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	var result *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, tenantID, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %w", ErrInternal, err)
		}

		if !booking.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		// Возврат отмененного бронирования в календарь
		if booking.IsCancelled() && newStatus == domain.StatusConfirmed {
			if err := s.checkReconfirm(txCtx, tenantID, booking); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, tenantID, id, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update: %w", ErrInternal, err)
		}

		booking.Status = newStatus
		result = booking
		return nil
	})

	if err != nil {
		switch {
		case pgerrors.IsSerializationFailure(err):
			s.logger.Warn("UpdateStatus: serialization conflict for booking id=%d: %v", id, err)
			return nil, ErrSlotUnavailable
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("UpdateStatus: booking id=%d not found for tenant=%d", id, tenantID)
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrOutsideWorkingHours):
			s.logger.Warn("UpdateStatus: booking id=%d rejected: %v", id, err)
		default:
			s.logger.Error("UpdateStatus: booking id=%d failed: %v", id, err)
		}
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, tenantID, result.Date); err != nil {
		s.logger.Warn("UpdateStatus: failed to invalidate slots cache for tenant=%d: %v", tenantID, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, newStatus)
	return models.FromDomainBooking(result), nil
}

// checkReconfirm проверяет, что отмененное бронирование можно вернуть в календарь.
// Вызывается внутри транзакции UpdateStatus.
func (s *Service) checkReconfirm(txCtx context.Context, tenantID int64, booking *domain.Booking) error {
	if err := s.bookingRepo.LockTenantDate(txCtx, tenantID, booking.Date); err != nil {
		return fmt.Errorf("%w: UpdateStatus - lock date: %w", ErrInternal, err)
	}

	workingHours, err := s.workingHoursRepo.GetByTenantAndWeekday(txCtx, tenantID, booking.Date.Weekday())
	if err != nil && !errors.Is(err, workingHoursRepo.ErrWorkingHoursNotFound) {
		return fmt.Errorf("%w: UpdateStatus - get working hours: %w", ErrInternal, err)
	}
	if workingHours == nil || !workingHours.IsOpen {
		return fmt.Errorf("%w: tenant is closed on %s", ErrOutsideWorkingHours, booking.Date.Format(domain.DateFormat))
	}
	if !workingHours.Contains(booking.StartTime, booking.EndTime) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s", ErrOutsideWorkingHours,
			booking.StartTime, booking.EndTime, workingHours.OpenTime, workingHours.CloseTime)
	}

	active, err := s.bookingRepo.ListActiveByTenantAndDate(txCtx, tenantID, booking.Date)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - list bookings: %w", ErrInternal, err)
	}
	if availability.CheckSlotConflict(booking.StartTime, booking.EndTime, active) {
		return ErrSlotUnavailable
	}

	blockedTimes, err := s.blockedTimeRepo.ListByTenantAndDate(txCtx, tenantID, booking.Date)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - list blocked times: %w", ErrInternal, err)
	}
	if availability.IsBlocked(booking.StartTime, booking.EndTime, blockedTimes) {
		return ErrSlotUnavailable
	}

	return nil
}
