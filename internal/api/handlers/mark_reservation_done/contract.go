package mark_reservation_done

import "context"

type ReservationService interface {
	MarkDone(ctx context.Context, reservationID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
