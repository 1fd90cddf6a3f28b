package models

import (
	"time"

	"github.com/moshavereh/booking-service/internal/domain"
)

// WorkingWindow рабочее окно в строковом виде
type WorkingWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpsertConsultationRequest запрос на создание или обновление консультации
type UpsertConsultationRequest struct {
	Title                  string          `json:"title"`
	ConsultantName         string          `json:"consultantName"`
	Description            string          `json:"description,omitempty"`
	SessionDurationMinutes int             `json:"sessionDurationMinutes"`
	WorkingWindows         []WorkingWindow `json:"workingWindows"`
	ThursdaysOpen          bool            `json:"thursdaysOpen"`
}

// ConsultationResponse модель консультации для внешних слоев
type ConsultationResponse struct {
	ID                     int64           `json:"id"`
	Title                  string          `json:"title"`
	ConsultantName         string          `json:"consultantName"`
	Description            string          `json:"description,omitempty"`
	SessionDurationMinutes int             `json:"sessionDurationMinutes"`
	WorkingWindows         []WorkingWindow `json:"workingWindows"`
	ThursdaysOpen          bool            `json:"thursdaysOpen"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// ConsultationListResponse список консультаций
type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
}

// FromDomainConsultation конвертирует доменную консультацию в response
func FromDomainConsultation(c *domain.Consultation) *ConsultationResponse {
	windows := make([]WorkingWindow, len(c.WorkingWindows))
	for i, w := range c.WorkingWindows {
		windows[i] = WorkingWindow{
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		}
	}

	return &ConsultationResponse{
		ID:                     c.ID,
		Title:                  c.Title,
		ConsultantName:         c.ConsultantName,
		Description:            c.Description,
		SessionDurationMinutes: c.SessionDurationMinutes,
		WorkingWindows:         windows,
		ThursdaysOpen:          c.ThursdaysOpen,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// FromDomainConsultationList конвертирует список доменных консультаций
func FromDomainConsultationList(consultations []*domain.Consultation) *ConsultationListResponse {
	result := make([]ConsultationResponse, len(consultations))
	for i, c := range consultations {
		result[i] = *FromDomainConsultation(c)
	}
	return &ConsultationListResponse{Consultations: result}
}
