package list_services

import (
	"net/http"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
)

const msgInvalidTenantID = "некорректный ID тенанта"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/services
// Публичный список: только активные услуги
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathInt64(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/services - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	result, err := h.service.ListActive(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/services - Failed to list services: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/services - Services retrieved: tenant_id=%d, count=%d", tenantID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
