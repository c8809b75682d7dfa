package create_blocked_time

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/blockedtimes"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/blockedtimes/models"
)

const (
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите оба времени (начало раньше конца) или ни одного для блокировки всего дня"
)

type Handler struct {
	service BlockedTimeService
	logger  Logger
}

func NewHandler(service BlockedTimeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/blocked-times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /tenants/{id}/blocked-times - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/blocked-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blockedtimes.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/blocked-times - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tenants/{id}/blocked-times - Failed to create: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/blocked-times - Blocked time created: id=%d, tenant_id=%d, date=%s",
		result.ID, tenantID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
