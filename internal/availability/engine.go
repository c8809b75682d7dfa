// Package availability computes bookable start times for a tenant and checks
// candidate intervals against existing bookings and blocked times.
//
// All functions are pure: they do no I/O, keep no state and never fail.
// Intervals are half-open [start, end) in minutes from midnight, so a booking
// ending at 10:00 does not conflict with one starting at 10:00.
package availability

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/internal/domain"
	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) share at least one minute.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return overlaps(aStart.Minutes(), aEnd.Minutes(), bStart.Minutes(), bEnd.Minutes())
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ComputeEndTime adds the duration to start. Day rollover is not checked:
// 23:30 plus 90 minutes yields "25:00".
func ComputeEndTime(start types.TimeString, durationMinutes int) types.TimeString {
	return types.NewTimeStringFromMinutes(start.Minutes() + durationMinutes)
}

// ComputeAvailableSlots walks the working window of the date in SlotStepMinutes
// steps and emits every start whose [start, start+duration) fits before closing.
// A slot is unavailable when it overlaps a non-cancelled booking or a partial
// block; a whole-day block marks every slot unavailable. Bookings and blocks
// dated on another day are ignored.
func ComputeAvailableSlots(
	workingHours *domain.WorkingHours,
	durationMinutes int,
	bookings []*domain.Booking,
	blockedTimes []*domain.BlockedTime,
	date time.Time,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if workingHours == nil || !workingHours.IsOpen || durationMinutes <= 0 {
		return slots
	}

	open := workingHours.OpenTime.Minutes()
	closing := workingHours.CloseTime.Minutes()
	if open < 0 || closing < 0 {
		return slots
	}

	busy := make([][2]int, 0, len(bookings)+len(blockedTimes))
	for _, b := range bookings {
		if b == nil || !b.OccupiesCalendar() || !sameDate(b.Date, date) {
			continue
		}
		busy = append(busy, [2]int{b.StartTime.Minutes(), b.EndTime.Minutes()})
	}

	wholeDay := false
	for _, bt := range blockedTimes {
		if bt == nil || !sameDate(bt.Date, date) {
			continue
		}
		if bt.IsWholeDay() {
			wholeDay = true
			continue
		}
		busy = append(busy, [2]int{bt.StartTime.Minutes(), bt.EndTime.Minutes()})
	}

	for cursor := open; cursor+durationMinutes <= closing; cursor += domain.SlotStepMinutes {
		end := cursor + durationMinutes
		available := !wholeDay
		for _, iv := range busy {
			if !available {
				break
			}
			if overlaps(cursor, end, iv[0], iv[1]) {
				available = false
			}
		}
		slots = append(slots, domain.TimeSlot{
			Time:      types.NewTimeStringFromMinutes(cursor),
			Available: available,
		})
	}

	return slots
}

// CheckSlotConflict reports whether any non-cancelled booking overlaps the candidate.
// Callers pass bookings already scoped to the tenant and date.
func CheckSlotConflict(candidateStart, candidateEnd types.TimeString, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b == nil || !b.OccupiesCalendar() {
			continue
		}
		if IntervalsOverlap(candidateStart, candidateEnd, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

// IsBlocked reports whether the candidate falls on a whole-day block or overlaps a partial one.
func IsBlocked(candidateStart, candidateEnd types.TimeString, blockedTimes []*domain.BlockedTime) bool {
	for _, bt := range blockedTimes {
		if bt == nil {
			continue
		}
		if bt.IsWholeDay() {
			return true
		}
		if IntervalsOverlap(candidateStart, candidateEnd, *bt.StartTime, *bt.EndTime) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
