package domain

import (
	"time"

	"github.com/moshavereh/booking-service/pkg/types"
)

// WorkingWindow is a recurring daily interval during which a consultant
// accepts bookings, e.g. 08:00-14:00. Start is inclusive, end is exclusive.
type WorkingWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Consultation represents a bookable consultation offering
type Consultation struct {
	ID                     int64
	Title                  string
	ConsultantName         string
	Description            string
	SessionDurationMinutes int
	WorkingWindows         []WorkingWindow
	ThursdaysOpen          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenOn reports whether the consultation accepts bookings on the given
// calendar day. Friday is always closed; Thursday is closed unless the
// consultation opted in via ThursdaysOpen.
func (c *Consultation) IsOpenOn(date time.Time) bool {
	switch date.Weekday() {
	case time.Friday:
		return false
	case time.Thursday:
		return c.ThursdaysOpen
	default:
		return true
	}
}
