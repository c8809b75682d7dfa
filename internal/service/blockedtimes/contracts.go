package blockedtimes

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	ListByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.BlockedTime, error)
	Create(ctx context.Context, bt *domain.BlockedTime) (*domain.BlockedTime, error)
	Delete(ctx context.Context, tenantID, id int64) (time.Time, error)
}

// SlotsCache инвалидация кэша слотов
type SlotsCache interface {
	Invalidate(ctx context.Context, tenantID int64, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
