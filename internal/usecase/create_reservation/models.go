package create_reservation

import (
	"time"

	"github.com/moshavereh/booking-service/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	CustomerID     int64            // ID клиента
	ConsultationID int64            // ID консультации
	Date           time.Time        // Дата брони (без времени)
	StartTime      types.TimeString // Время начала слота (например, "08:30")
}

// Response модель ответа с созданной бронью
type Response struct {
	ID              int64
	CustomerID      int64
	ConsultationID  int64
	ReservationDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные консультации
	ConsultationTitle string
	ConsultantName    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
