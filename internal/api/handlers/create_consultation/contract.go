package create_consultation

import (
	"context"

	"github.com/moshavereh/booking-service/internal/service/consultations/models"
)

type ConsultationService interface {
	Create(ctx context.Context, req *models.UpsertConsultationRequest) (*models.ConsultationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
