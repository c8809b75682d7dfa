package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	ListByTenant(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error)
	ListActiveByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error)
	LockTenantDate(ctx context.Context, tenantID int64, date time.Time) error
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByTenantAndWeekday(ctx context.Context, tenantID int64, weekday time.Weekday) (*domain.WorkingHours, error)
}

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.BlockedTime, error)
}

// SlotsCache кэш вычисленных слотов
type SlotsCache interface {
	Invalidate(ctx context.Context, tenantID int64, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
