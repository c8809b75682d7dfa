package get_tenant_by_slug

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/tenants"
)

const (
	msgMissingSlug = "slug обязателен"
	msgNotFound    = "тенант не найден"
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

// Handle GET /api/v1/tenants/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := strings.ToLower(strings.TrimSpace(mux.Vars(r)["slug"]))
	if slug == "" {
		h.logger.Warn("GET /tenants/{slug} - Missing slug")
		handlers.RespondBadRequest(w, msgMissingSlug)
		return
	}

	tenant, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, tenants.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{slug} - Tenant not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /tenants/{slug} - Failed to get tenant: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{slug} - Tenant retrieved: slug=%s, tenant_id=%d", slug, tenant.ID)
	handlers.RespondJSON(w, http.StatusOK, tenant)
}
