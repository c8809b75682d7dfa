package catalog

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Service, error)
	ListActiveByTenant(ctx context.Context, tenantID int64) ([]*domain.Service, error)
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
}

// SlotsCache инвалидация кэша слотов
type SlotsCache interface {
	InvalidateTenant(ctx context.Context, tenantID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
