package list_blocked_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/service/blockedtimes/models"
)

type BlockedTimeService interface {
	ListByDate(ctx context.Context, tenantID int64, date time.Time) (*models.BlockedTimeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
