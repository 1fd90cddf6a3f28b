package consultations

import (
	"context"

	"github.com/moshavereh/booking-service/internal/domain"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *domain.Consultation) (*domain.Consultation, error)
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	List(ctx context.Context) ([]*domain.Consultation, error)
	Update(ctx context.Context, id int64, consultation *domain.Consultation) (*domain.Consultation, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
