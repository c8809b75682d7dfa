package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
	"github.com/m04kA/SMC-TenantBookingService/pkg/validate"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if err := validate.Validator().Var(req.CustomerEmail, "required,email"); err != nil {
		return fmt.Errorf("%w: customerEmail is not a valid email", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays
func validateDate(date, now time.Time, advanceBookingDays int) error {
	today := dateOnly(now)
	day := dateOnly(date)

	if day.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateStartTime запрещает бронировать на уже прошедшее время сегодняшнего дня
func validateStartTime(date time.Time, startTime types.TimeString, now time.Time) error {
	if !dateOnly(date).Equal(dateOnly(now)) {
		return nil
	}

	if startTime.IsBefore(types.NewTimeString(now)) {
		return ErrTooLateToBook
	}

	return nil
}

// validateBookingData проверяет, что данные категории относятся к категории тенанта
func validateBookingData(tenant *domain.Tenant, data *domain.BookingCategoryData) error {
	if data == nil {
		return nil
	}

	if !tenant.AcceptsBookingData(data) {
		return fmt.Errorf("%w: tenant category is %s, got %s", ErrInvalidBookingData, tenant.Category, data.Category)
	}

	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBookingData, err)
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
