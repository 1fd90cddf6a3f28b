package update_consultation

import (
	"context"

	"github.com/moshavereh/booking-service/internal/service/consultations/models"
)

type ConsultationService interface {
	Update(ctx context.Context, id int64, req *models.UpsertConsultationRequest) (*models.ConsultationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
