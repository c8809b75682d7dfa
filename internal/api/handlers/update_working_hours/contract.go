package update_working_hours

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Upsert(ctx context.Context, req *models.UpsertRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
