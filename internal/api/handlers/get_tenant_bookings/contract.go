package get_tenant_bookings

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListByTenant(ctx context.Context, req *models.ListTenantBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
