package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TenantBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-TenantBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
	msgTenantNotFound     = "тенант не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgTenantClosed       = "в выбранный день тенант не работает"
	msgOutsideHours       = "бронирование выходит за рабочие часы"
	msgCrossesMidnight    = "бронирование должно закончиться до полуночи"
	msgInvalidBookingDate = "дата бронирования уже прошла"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook      = "время начала уже прошло"
	msgInvalidBookingData = "данные бронирования не подходят для категории тенанта"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathInt64(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /tenants/{id}/bookings - Slot unavailable: tenant_id=%d, date=%s, start=%s",
				tenantID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrTenantNotFound):
			h.logger.Warn("POST /tenants/{id}/bookings - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /tenants/{id}/bookings - Service not found: tenant_id=%d, service_id=%d", tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrTenantClosed):
			h.logger.Warn("POST /tenants/{id}/bookings - Tenant closed: tenant_id=%d, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgTenantClosed)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /tenants/{id}/bookings - Outside working hours: tenant_id=%d, start=%s", tenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrCrossesMidnight):
			h.logger.Warn("POST /tenants/{id}/bookings - Crosses midnight: tenant_id=%d, start=%s", tenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgCrossesMidnight)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /tenants/{id}/bookings - Past date: tenant_id=%d, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /tenants/{id}/bookings - Date too far in future: tenant_id=%d, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /tenants/{id}/bookings - Too late to book: tenant_id=%d, start=%s", tenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidBookingData):
			h.logger.Warn("POST /tenants/{id}/bookings - Invalid booking data: tenant_id=%d: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingData)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/bookings - Invalid input: tenant_id=%d: %v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tenants/{id}/bookings - Failed to create booking: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /tenants/{id}/bookings - Booking created successfully: booking_id=%d, tenant_id=%d",
		result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
