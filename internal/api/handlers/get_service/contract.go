package get_service

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
)

type CatalogService interface {
	GetActive(ctx context.Context, tenantID, id int64) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
