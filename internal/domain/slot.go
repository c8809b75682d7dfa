package domain

import "github.com/m04kA/SMC-TenantBookingService/pkg/types"

// TimeSlot is a candidate start time produced for a date and service duration
type TimeSlot struct {
	Time      types.TimeString
	Available bool
}

// CountAvailable returns the number of available slots
func CountAvailable(slots []TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
