package get_consultation_reservations

import (
	"context"

	"github.com/moshavereh/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	GetConsultationReservations(ctx context.Context, req *models.GetConsultationReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
