package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
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

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays
// now должен быть уже переведен в часовой пояс бронирований
func validateDate(date, now time.Time, advanceBookingDays int) error {
	today := dateOnly(now)
	day := dateOnly(date)

	if day.Before(today) {
		return ErrInvalidDate
	}

	// 0 = без ограничений
	if advanceBookingDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// dateOnly оставляет только календарную дату (в UTC, чтобы сравнение не зависело от пояса)
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// markPastSlots возвращает копию слотов, где начало раньше now на сегодняшнюю дату недоступно.
// Правило совпадает с проверкой времени начала в create_booking.
func markPastSlots(slots []domain.TimeSlot, date, now time.Time) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slots))
	copy(result, slots)

	if !dateOnly(date).Equal(dateOnly(now)) {
		return result
	}

	current := types.NewTimeString(now)
	for i := range result {
		if result[i].Time.IsBefore(current) {
			result[i].Available = false
		}
	}
	return result
}
