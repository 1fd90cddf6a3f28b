package get_consultation_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/moshavereh/booking-service/internal/api/handlers"
	"github.com/moshavereh/booking-service/internal/calendar"
	"github.com/moshavereh/booking-service/internal/service/reservations"
	"github.com/moshavereh/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidConsultationID = "некорректный ID консультации"
	msgInvalidDate           = "некорректный формат даты, ожидается джалали YYYY-MM-DD"
	msgInvalidStatus         = "некорректный статус брони"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultations/{consultationId}/reservations
// Query params: date (опционально, джалали YYYY-MM-DD), status (опционально),
// includeInactive (опционально, true/false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем consultationId из URL
	vars := mux.Vars(r)
	consultationIDStr := vars["consultationId"]

	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultations/{id}/reservations - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	// Формируем запрос к сервису из query параметров
	serviceReq := &models.GetConsultationReservationsRequest{
		ConsultationID: consultationID,
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := calendar.ParseDate(dateStr)
		if err != nil {
			h.logger.Warn("GET /consultations/{id}/reservations - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	if includeInactive := r.URL.Query().Get("includeInactive"); includeInactive == "true" {
		serviceReq.IncludeInactive = true
	}

	// Получаем брони консультации
	result, err := h.service.GetConsultationReservations(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /consultations/{id}/reservations - Invalid status: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /consultations/{id}/reservations - Failed to get reservations: consultation_id=%d, error=%v",
			consultationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /consultations/{id}/reservations - Reservations retrieved successfully: consultation_id=%d, count=%d",
		consultationID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
