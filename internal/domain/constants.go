package domain

// SlotStepMinutes is the fixed distance between consecutive candidate slot starts.
// It is independent of the service duration.
const SlotStepMinutes = 30

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 1440 // 24 hours
	MaxNoteLength             = 500
	MaxReasonLength           = 500
	MaxCustomerNameLength     = 200
	MaxServiceNameLength      = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, которые занимают время в календаре
// Используется для фильтрации при подсчёте доступных слотов
var OccupyingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}
