package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/availability"
	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/service"
	tenantRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/tenant"
	workingHoursRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-TenantBookingService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-TenantBookingService/pkg/pgerrors"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	tenantRepo         TenantRepository
	serviceRepo        ServiceRepository
	workingHoursRepo   WorkingHoursRepository
	blockedTimeRepo    BlockedTimeRepository
	cache              SlotsCache
	notifier           NotificationClient
	metrics            MetricsRecorder
	txManager          TransactionManager
	advanceBookingDays int
	location           *time.Location
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tenantRepo TenantRepository,
	serviceRepo ServiceRepository,
	workingHoursRepo WorkingHoursRepository,
	blockedTimeRepo BlockedTimeRepository,
	cache SlotsCache,
	notifier NotificationClient,
	metrics MetricsRecorder,
	txManager TransactionManager,
	advanceBookingDays int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:        bookingRepo,
		tenantRepo:         tenantRepo,
		serviceRepo:        serviceRepo,
		workingHoursRepo:   workingHoursRepo,
		blockedTimeRepo:    blockedTimeRepo,
		cache:              cache,
		notifier:           notifier,
		metrics:            metrics,
		txManager:          txManager,
		advanceBookingDays: advanceBookingDays,
		location:           location,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений повторяется внутри сериализуемой транзакции под advisory lock (tenant, date):
// из двух параллельных запросов на один интервал успешен только первый.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату и время относительно "сейчас" в поясе бронирований
	now := uc.timeProvider.Now().In(uc.location)
	if err := validateDate(req.Date, now, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateStartTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: start time %s already passed", req.StartTime)
		return nil, err
	}

	// 3. Получаем тенанта и проверяем данные категории
	tenant, err := uc.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			uc.logger.Warn("CreateBooking: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	if err := validateBookingData(tenant, req.BookingData); err != nil {
		uc.logger.Warn("CreateBooking: booking data rejected for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	// 4. Получаем активную услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Время окончания по текущей длительности услуги
	endTime := availability.ComputeEndTime(req.StartTime, service.DurationMinutes)
	if endTime.Minutes() > types.MinutesPerDay {
		uc.logger.Warn("CreateBooking: %s + %d min crosses midnight", req.StartTime, service.DurationMinutes)
		return nil, ErrCrossesMidnight
	}

	var result *domain.Booking

	// 6. Выполняем проверку и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Сериализуем коммиты тенанта на эту дату
		if err := uc.bookingRepo.LockTenantDate(txCtx, req.TenantID, req.Date); err != nil {
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}

		// 6.2. Рабочие часы
		workingHours, err := uc.workingHoursRepo.GetByTenantAndWeekday(txCtx, req.TenantID, req.Date.Weekday())
		if err != nil && !errors.Is(err, workingHoursRepo.ErrWorkingHoursNotFound) {
			return fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
		}
		if workingHours == nil || !workingHours.IsOpen {
			return ErrTenantClosed
		}
		if !workingHours.Contains(req.StartTime, endTime) {
			return fmt.Errorf("%w: %s-%s is outside %s-%s", ErrOutsideWorkingHours,
				req.StartTime, endTime, workingHours.OpenTime, workingHours.CloseTime)
		}

		// 6.3. Перечитываем бронирования (FOR UPDATE) и блокировки
		bookings, err := uc.bookingRepo.ListActiveByTenantAndDate(txCtx, req.TenantID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		blockedTimes, err := uc.blockedTimeRepo.ListByTenantAndDate(txCtx, req.TenantID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get blocked times: %w", ErrInternal, err)
		}

		// 6.4. Проверка пересечений
		if availability.CheckSlotConflict(req.StartTime, endTime, bookings) {
			uc.metrics.BookingConflict(conflictOverlap)
			return ErrSlotUnavailable
		}
		if availability.IsBlocked(req.StartTime, endTime, blockedTimes) {
			uc.metrics.BookingConflict(conflictBlocked)
			return ErrSlotUnavailable
		}

		// 6.5. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			TenantID:      req.TenantID,
			ServiceID:     req.ServiceID,
			Date:          req.Date,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			Status:        domain.StatusConfirmed,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: strings.TrimSpace(req.CustomerEmail),
			CustomerPhone: strings.TrimSpace(req.CustomerPhone),
			Note:          req.Note,
			BookingData:   req.BookingData,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case pgerrors.IsSerializationFailure(err):
			// Параллельная транзакция успела раньше
			uc.metrics.BookingConflict(conflictSerialization)
			uc.logger.Warn("CreateBooking: serialization conflict for tenant=%d date=%s: %v",
				req.TenantID, req.Date.Format(domain.DateFormat), err)
			return nil, ErrSlotUnavailable
		case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrTenantClosed), errors.Is(err, ErrOutsideWorkingHours):
			uc.logger.Warn("CreateBooking: rejected tenant=%d date=%s time=%s: %v",
				req.TenantID, req.Date.Format(domain.DateFormat), req.StartTime, err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			if errors.Is(err, ErrInternal) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	uc.metrics.BookingCreated()

	// 7. После коммита: кэш и уведомления
	if err := uc.cache.Invalidate(ctx, req.TenantID, req.Date); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate slots cache for tenant=%d: %v", req.TenantID, err)
	}

	go uc.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), buildNotification(tenant, service, result))

	return &Response{
		ID:              result.ID,
		TenantID:        result.TenantID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: service.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		Note:            result.Note,
		BookingData:     result.BookingData,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func buildNotification(tenant *domain.Tenant, service *domain.Service, b *domain.Booking) *notificationservice.BookingNotification {
	return &notificationservice.BookingNotification{
		BookingID:     b.ID,
		TenantID:      tenant.ID,
		TenantName:    tenant.Name,
		TenantEmail:   tenant.Email,
		TenantColor:   tenant.PrimaryColor,
		ServiceName:   service.Name,
		Date:          b.Date.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Note:          b.Note,
	}
}
