package get_tenant_profile

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants/models"
)

type TenantService interface {
	GetByID(ctx context.Context, id int64) (*models.TenantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
