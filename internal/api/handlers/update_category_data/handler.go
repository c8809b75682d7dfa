package update_category_data

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants"
)

const (
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "тенант не найден"
	msgCategoryMismatch   = "данные не соответствуют категории тенанта"
	msgInvalidData        = "некорректные данные категории"
)

type Handler struct {
	service TenantService
	logger  Logger
}

func NewHandler(service TenantService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tenants/{tenantId}/category-data
// Тело: {"category": "BARBERSHOP", "data": {...}}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /tenants/{id}/category-data - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var data domain.CategoryData
	if err := handlers.DecodeJSON(r, &data); err != nil {
		h.logger.Warn("PUT /tenants/{id}/category-data - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tenant, err := h.service.UpdateCategoryData(r.Context(), tenantID, &data)
	if err != nil {
		switch {
		case errors.Is(err, tenants.ErrTenantNotFound):
			h.logger.Warn("PUT /tenants/{id}/category-data - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tenants.ErrCategoryMismatch):
			h.logger.Warn("PUT /tenants/{id}/category-data - Category mismatch: tenant_id=%d, got=%s", tenantID, data.Category)
			handlers.RespondBadRequest(w, msgCategoryMismatch)

		case errors.Is(err, tenants.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{id}/category-data - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /tenants/{id}/category-data - Failed to update: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/category-data - Category data updated: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, tenant)
}
