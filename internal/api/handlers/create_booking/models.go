package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-TenantBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64                       `json:"serviceId" validate:"required,gt=0"`
	Date          string                      `json:"date" validate:"required,date"`      // "2025-10-15"
	StartTime     string                      `json:"startTime" validate:"required,hhmm"` // "10:00"
	CustomerName  string                      `json:"customerName" validate:"required,max=200"`
	CustomerEmail string                      `json:"customerEmail" validate:"required,email"`
	CustomerPhone string                      `json:"customerPhone" validate:"required,max=50"`
	Note          *string                     `json:"note,omitempty" validate:"omitempty,max=1000"`
	BookingData   *domain.BookingCategoryData `json:"bookingData,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64                       `json:"id"`
	TenantID        int64                       `json:"tenantId"`
	ServiceID       int64                       `json:"serviceId"`
	Date            string                      `json:"date"`
	StartTime       string                      `json:"startTime"`
	EndTime         string                      `json:"endTime"`
	DurationMinutes int                         `json:"durationMinutes"`
	Status          string                      `json:"status"`
	ServiceName     string                      `json:"serviceName"`
	ServicePrice    float64                     `json:"servicePrice"`
	CustomerName    string                      `json:"customerName"`
	CustomerEmail   string                      `json:"customerEmail"`
	CustomerPhone   string                      `json:"customerPhone"`
	Note            *string                     `json:"note,omitempty"`
	BookingData     *domain.BookingCategoryData `json:"bookingData,omitempty"`
	CreatedAt       string                      `json:"createdAt"`
	UpdatedAt       string                      `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	return &createBooking.Request{
		TenantID:      tenantID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Note:          r.Note,
		BookingData:   r.BookingData,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		TenantID:        resp.TenantID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		Note:            resp.Note,
		BookingData:     resp.BookingData,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
