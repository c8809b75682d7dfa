package domain

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Booking represents a customer reservation of a service at a tenant
type Booking struct {
	ID        int64
	TenantID  int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	// EndTime is computed once at creation from the service duration and never recomputed
	EndTime types.TimeString
	Status  BookingStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string

	// BookingData carries category specific details (table, stylist, trainer...)
	BookingData *BookingCategoryData

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCalendar returns true if the booking blocks its interval.
// Confirmed and completed bookings occupy the calendar, cancelled ones do not.
func (b *Booking) OccupiesCalendar() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanTransitionTo reports whether the status change is allowed.
// Completed is terminal; a cancelled booking may only be confirmed again.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if !next.IsValid() || next == b.Status {
		return false
	}
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusCancelled:
		return next == StatusConfirmed
	default:
		return false
	}
}

// TenantBookingsFilter фильтр для получения бронирований тенанта
type TenantBookingsFilter struct {
	TenantID         int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные бронирования
}

// IsSingleDate returns true when the filter targets exactly one calendar date
func (f TenantBookingsFilter) IsSingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
