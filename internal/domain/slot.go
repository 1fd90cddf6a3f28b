package domain

import (
	"time"

	"github.com/moshavereh/booking-service/pkg/types"
)

// AvailabilitySlot is a computed candidate appointment start-time. It has no
// identity of its own and is regenerated on every availability query.
type AvailabilitySlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Bookable        bool
}

// CandidateSlots generates every candidate start-time for one day from the
// working windows. This is the single canonical slot algorithm; every read
// and write path goes through it.
//
// Windows are processed in their configured order and results concatenated.
// Within a window, slots start at the window start and advance by the session
// duration; a slot that would not fit entirely before the window end is
// dropped, never truncated. Overlapping windows may produce duplicate
// start-times; callers de-duplicate with DedupeSlots.
func CandidateSlots(windows []WorkingWindow, sessionDurationMinutes int) []types.TimeString {
	if sessionDurationMinutes <= 0 {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)

	for _, window := range windows {
		current := window.StartTime
		for {
			end, err := current.AddMinutes(sessionDurationMinutes)
			if err != nil {
				// Slot would run past midnight; it cannot fit in the window either.
				break
			}
			if end.IsAfter(window.EndTime) {
				break
			}
			slots = append(slots, current)
			current = end
		}
	}

	return slots
}

// DedupeSlots removes duplicate start-times keeping the first occurrence,
// preserving order.
func DedupeSlots(slots []types.TimeString) []types.TimeString {
	seen := make(map[types.TimeString]struct{}, len(slots))
	result := make([]types.TimeString, 0, len(slots))

	for _, slot := range slots {
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		result = append(result, slot)
	}

	return result
}

// SlotElapsed reports whether a slot starting at slotStart has already passed
// at the moment now. A slot starting exactly at now counts as elapsed.
// Callers apply this only when the requested day is now's calendar day.
func SlotElapsed(slotStart types.TimeString, now time.Time) bool {
	return !slotStart.IsAfter(types.NewTimeString(now))
}
