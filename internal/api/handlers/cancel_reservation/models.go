package cancel_reservation

import (
	"github.com/moshavereh/booking-service/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(customerID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		CustomerID: customerID,
		Reason:     r.Reason,
	}
}
