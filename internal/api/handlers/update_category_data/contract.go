package update_category_data

import (
	"context"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants/models"
)

type TenantService interface {
	UpdateCategoryData(ctx context.Context, id int64, data *domain.CategoryData) (*models.TenantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
