package create_reservation

import (
	"time"

	"github.com/moshavereh/booking-service/internal/calendar"
	createReservation "github.com/moshavereh/booking-service/internal/usecase/create_reservation"
	"github.com/moshavereh/booking-service/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ConsultationID int64  `json:"consultationId"`
	Date           string `json:"date"`      // джалали, "1404-06-15"
	StartTime      string `json:"startTime"` // "08:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                int64  `json:"id"`
	CustomerID        int64  `json:"customerId"`
	ConsultationID    int64  `json:"consultationId"`
	Date              string `json:"date"`
	StartTime         string `json:"startTime"`
	DurationMinutes   int    `json:"durationMinutes"`
	Status            string `json:"status"`
	ConsultationTitle string `json:"consultationTitle"`
	ConsultantName    string `json:"consultantName"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	// Парсим джалали-дату
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerID:     customerID,
		ConsultationID: r.ConsultationID,
		Date:           date,
		StartTime:      startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                resp.ID,
		CustomerID:        resp.CustomerID,
		ConsultationID:    resp.ConsultationID,
		Date:              calendar.FormatDate(resp.ReservationDate),
		StartTime:         resp.StartTime.String(),
		DurationMinutes:   resp.DurationMinutes,
		Status:            resp.Status,
		ConsultationTitle: resp.ConsultationTitle,
		ConsultantName:    resp.ConsultantName,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
