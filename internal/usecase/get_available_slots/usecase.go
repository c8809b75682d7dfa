package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/availability"
	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/service"
	workingHoursRepo "github.com/m04kA/SMC-TenantBookingService/internal/infra/storage/workinghours"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	serviceRepo        ServiceRepository
	workingHoursRepo   WorkingHoursRepository
	bookingRepo        BookingRepository
	blockedTimeRepo    BlockedTimeRepository
	cache              SlotsCache
	metrics            MetricsRecorder
	advanceBookingDays int
	location           *time.Location
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	workingHoursRepo WorkingHoursRepository,
	bookingRepo BookingRepository,
	blockedTimeRepo BlockedTimeRepository,
	cache SlotsCache,
	metrics MetricsRecorder,
	advanceBookingDays int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		serviceRepo:        serviceRepo,
		workingHoursRepo:   workingHoursRepo,
		bookingRepo:        bookingRepo,
		blockedTimeRepo:    blockedTimeRepo,
		cache:              cache,
		metrics:            metrics,
		advanceBookingDays: advanceBookingDays,
		location:           location,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute возвращает все слоты дня с признаком доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, service=%d, date=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату относительно "сегодня" в поясе бронирований
	now := uc.timeProvider.Now().In(uc.location)
	if err := validateDate(req.Date, now, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем активную услугу, от нее зависит длительность
	service, err := uc.serviceRepo.GetByID(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for tenant=%d", req.ServiceID, req.TenantID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	response := &Response{
		Date:            req.Date,
		TenantID:        req.TenantID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
	}

	// 4. Пробуем кэш; ошибки кэша не ломают запрос
	// В кэше лежат слоты без учета текущего времени, прошедшие отмечаются на выходе
	cached, found, err := uc.cache.Get(ctx, req.TenantID, req.Date, req.ServiceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
	}
	if found {
		uc.metrics.SlotQuery(sourceCache)
		response.Slots = markPastSlots(cached, req.Date, now)
		return response, nil
	}

	// 5. Рабочие часы на день недели; отсутствие записи значит выходной
	workingHours, err := uc.workingHoursRepo.GetByTenantAndWeekday(ctx, req.TenantID, req.Date.Weekday())
	if err != nil && !errors.Is(err, workingHoursRepo.ErrWorkingHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	slots := make([]domain.TimeSlot, 0)

	if workingHours != nil && workingHours.IsOpen {
		// 6. Бронирования и блокировки на дату
		bookings, err := uc.bookingRepo.ListActiveByTenantAndDate(ctx, req.TenantID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blockedTimes, err := uc.blockedTimeRepo.ListByTenantAndDate(ctx, req.TenantID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get blocked times: %v", err)
			return nil, fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
		}

		// 7. Генерация слотов
		slots = availability.ComputeAvailableSlots(workingHours, service.DurationMinutes, bookings, blockedTimes, req.Date)
	} else {
		uc.logger.Info("GetAvailableSlots: tenant=%d is closed on %s", req.TenantID, req.Date.Weekday())
	}

	// 8. Сохраняем в кэш
	if err := uc.cache.Set(ctx, req.TenantID, req.Date, req.ServiceID, slots); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
	}

	// 9. Сегодня уже прошедшие слоты недоступны, как и в create_booking
	response.Slots = markPastSlots(slots, req.Date, now)

	uc.metrics.SlotQuery(sourceComputed)
	uc.logger.Info("GetAvailableSlots: %d slots, %d available", len(response.Slots), domain.CountAvailable(response.Slots))

	return response, nil
}
