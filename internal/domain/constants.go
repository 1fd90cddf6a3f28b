package domain

// Business validation constants
const (
	MinSessionDurationMinutes   = 5
	MaxSessionDurationMinutes   = 480 // 8 hours
	MaxWorkingWindows           = 8
	MaxTitleLength              = 200
	MaxConsultantNameLength     = 200
	MaxDescriptionLength        = 2000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD (Gregorian, storage layer only)
)

// LiveStatuses статусы, в которых бронь удерживает свой слот.
// Используется при вычислении занятых слотов.
var LiveStatuses = []ReservationStatus{
	StatusPending,
	StatusDone,
}
