package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TenantBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/workinghours"
	"github.com/m04kA/SMC-TenantBookingService/internal/service/workinghours/models"
)

const (
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidWeekday     = "некорректный день недели, ожидается 0..6 (0 = воскресенье)"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "время открытия должно быть раньше времени закрытия"
)

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

// Handle PUT /api/v1/tenants/{tenantId}/working-hours/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /tenants/{id}/working-hours/{weekday} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	weekday, err := strconv.Atoi(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("PUT /tenants/{id}/working-hours/{weekday} - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	var req models.UpsertRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/working-hours/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.Weekday = weekday

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, workinghours.ErrInvalidWeekday):
			h.logger.Warn("PUT /tenants/{id}/working-hours/{weekday} - Invalid weekday: %d", weekday)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, workinghours.ErrInvalidTime):
			h.logger.Warn("PUT /tenants/{id}/working-hours/{weekday} - Invalid time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("PUT /tenants/{id}/working-hours/{weekday} - Failed to update: tenant_id=%d, weekday=%d, error=%v",
				tenantID, weekday, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/working-hours/{weekday} - Working hours updated: tenant_id=%d, weekday=%d, open=%t",
		tenantID, weekday, result.IsOpen)
	handlers.RespondJSON(w, http.StatusOK, result)
}
