package delete_blocked_time

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/blockedtimes"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidID       = "некорректный ID блокировки"
	msgNotFound        = "блокировка не найдена"
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

// Handle DELETE /api/v1/tenants/{tenantId}/blocked-times/{blockedTimeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /tenants/{id}/blocked-times/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	id, err := handlers.PathInt64(r, "blockedTimeId")
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/blocked-times/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, id); err != nil {
		switch {
		case errors.Is(err, blockedtimes.ErrBlockedTimeNotFound):
			h.logger.Warn("DELETE /tenants/{id}/blocked-times/{id} - Not found: tenant_id=%d, id=%d", tenantID, id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /tenants/{id}/blocked-times/{id} - Failed to delete: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{id}/blocked-times/{id} - Blocked time deleted: tenant_id=%d, id=%d", tenantID, id)
	w.WriteHeader(http.StatusNoContent)
}
