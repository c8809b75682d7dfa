package domain

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// WorkingHours represents the open/close window of a tenant for one weekday.
// Weekday follows time.Weekday numbering: 0=Sunday .. 6=Saturday.
// At most one record exists per (tenant, weekday); a missing record means closed.
type WorkingHours struct {
	ID        int64
	TenantID  int64
	Weekday   time.Weekday
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WindowMinutes returns the length of the working window in minutes, 0 when closed
func (w *WorkingHours) WindowMinutes() int {
	if w == nil || !w.IsOpen {
		return 0
	}
	window := w.CloseTime.Minutes() - w.OpenTime.Minutes()
	if window < 0 {
		return 0
	}
	return window
}

// Contains reports whether [start, end) lies inside the working window
func (w *WorkingHours) Contains(start, end types.TimeString) bool {
	if w == nil || !w.IsOpen {
		return false
	}
	return !start.IsBefore(w.OpenTime) && !end.IsAfter(w.CloseTime)
}

// IsValidWeekday reports whether d is in the 0..6 range
func IsValidWeekday(d int) bool {
	return d >= int(time.Sunday) && d <= int(time.Saturday)
}
