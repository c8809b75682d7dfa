package apply_default_working_hours

import (
	"net/http"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
)

const msgMissingTenantID = "отсутствует ID тенанта"

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/working-hours/defaults
// Перезаписывает неделю значениями по умолчанию (Вс закрыто)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /tenants/{id}/working-hours/defaults - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	week, err := h.service.ApplyDefaults(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("POST /tenants/{id}/working-hours/defaults - Failed to apply defaults: tenant_id=%d, error=%v",
			tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /tenants/{id}/working-hours/defaults - Default week applied: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, week)
}
