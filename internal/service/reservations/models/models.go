package models

import (
	"time"

	"github.com/moshavereh/booking-service/internal/calendar"
	"github.com/moshavereh/booking-service/internal/domain"
)

// ReservationResponse модель брони для внешних слоев.
// Дата отдается в джалали-формате, как и принималась на входе.
type ReservationResponse struct {
	ID                 int64      `json:"id"`
	ConsultationID     int64      `json:"consultationId"`
	CustomerID         int64      `json:"customerId"`
	Date               string     `json:"date"` // джалали, YYYY-MM-DD
	StartTime          string     `json:"startTime"`
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	ConsultationTitle  string     `json:"consultationTitle"`
	ConsultantName     string     `json:"consultantName"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CanceledAt         *time.Time `json:"canceledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// GetCustomerReservationsRequest запрос истории броней клиента
type GetCustomerReservationsRequest struct {
	CustomerID int64
	Status     *string // опциональный фильтр по статусу
}

// GetConsultationReservationsRequest запрос броней консультации
type GetConsultationReservationsRequest struct {
	ConsultationID  int64
	Date            *time.Time
	Status          *string
	IncludeInactive bool
}

// CancelReservationRequest запрос на отмену брони
type CancelReservationRequest struct {
	CustomerID int64  `json:"customerId"`
	Reason     string `json:"reason"`
}

// FromDomainReservation конвертирует доменную бронь в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 r.ID,
		ConsultationID:     r.ConsultationID,
		CustomerID:         r.CustomerID,
		Date:               calendar.FormatDate(r.ReservationDate),
		StartTime:          r.StartTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		ConsultationTitle:  r.ConsultationTitle,
		ConsultantName:     r.ConsultantName,
		CancellationReason: r.CancellationReason,
		CanceledAt:         r.CanceledAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных броней
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		result[i] = *FromDomainReservation(r)
	}
	return &ReservationListResponse{Reservations: result}
}

// ToDomainReservationStatus конвертирует строку в доменный статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, bool) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusDone, domain.StatusCanceled:
		return domain.ReservationStatus(s), true
	default:
		return "", false
	}
}
