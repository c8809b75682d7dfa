package get_tenant_by_slug

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants/models"
)

type TenantService interface {
	GetBySlug(ctx context.Context, slug string) (*models.TenantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
