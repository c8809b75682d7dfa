package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Service, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByTenantAndWeekday(ctx context.Context, tenantID int64, weekday time.Weekday) (*domain.WorkingHours, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveByTenantAndDate получает неотмененные бронирования тенанта на дату
	ListActiveByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error)
}

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.BlockedTime, error)
}

// SlotsCache кэш вычисленных слотов
type SlotsCache interface {
	Get(ctx context.Context, tenantID int64, date time.Time, serviceID int64) ([]domain.TimeSlot, bool, error)
	Set(ctx context.Context, tenantID int64, date time.Time, serviceID int64, slots []domain.TimeSlot) error
}

// MetricsRecorder метрики запросов слотов
type MetricsRecorder interface {
	SlotQuery(source string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
