package domain

import (
	"time"

	"github.com/moshavereh/booking-service/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending  ReservationStatus = "pending"
	StatusDone     ReservationStatus = "done"
	StatusCanceled ReservationStatus = "canceled"
)

// Reservation represents a customer's hold on one slot of a consultation.
// A canceled reservation is never reopened; rebooking the slot creates a
// new reservation row.
type Reservation struct {
	ID              int64
	ConsultationID  int64
	CustomerID      int64
	ReservationDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized so history survives consultation edits
	ConsultationTitle string
	ConsultantName    string

	CancellationReason *string
	CanceledAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive returns true while the reservation holds its slot
func (r *Reservation) IsLive() bool {
	return r.Status == StatusPending || r.Status == StatusDone
}

// CanBeCanceled returns true if the reservation can transition to canceled
func (r *Reservation) CanBeCanceled() bool {
	return r.Status == StatusPending
}

// CanBeMarkedDone returns true if the reservation can transition to done
func (r *Reservation) CanBeMarkedDone() bool {
	return r.Status == StatusPending
}

// IsTerminal returns true if no transition leaves the current status
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusDone || r.Status == StatusCanceled
}

// ReservationsFilter фильтр для выборки броней консультации
type ReservationsFilter struct {
	ConsultationID  int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые брони
}
