package apply_default_working_hours

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	ApplyDefaults(ctx context.Context, tenantID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
