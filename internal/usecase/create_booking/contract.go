package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/integrations/notificationservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// LockTenantDate сериализует все коммиты одного тенанта на одну дату
	LockTenantDate(ctx context.Context, tenantID int64, date time.Time) error
	ListActiveByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TenantRepository интерфейс репозитория тенантов
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Service, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByTenantAndWeekday(ctx context.Context, tenantID int64, weekday time.Weekday) (*domain.WorkingHours, error)
}

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.BlockedTime, error)
}

// SlotsCache инвалидация кэша слотов
type SlotsCache interface {
	Invalidate(ctx context.Context, tenantID int64, date time.Time) error
}

// NotificationClient интерфейс клиента сервиса уведомлений
type NotificationClient interface {
	NotifyBookingCreated(ctx context.Context, n *notificationservice.BookingNotification)
}

// MetricsRecorder метрики бронирований
type MetricsRecorder interface {
	BookingCreated()
	BookingConflict(reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
