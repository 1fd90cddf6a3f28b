package list_consultations

import (
	"context"

	"github.com/moshavereh/booking-service/internal/service/consultations/models"
)

type ConsultationService interface {
	List(ctx context.Context) (*models.ConsultationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
