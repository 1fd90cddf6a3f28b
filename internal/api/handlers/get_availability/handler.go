package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/moshavereh/booking-service/internal/api/handlers"
	getAvailability "github.com/moshavereh/booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidConsultationID = "некорректный ID консультации"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается джалали YYYY-MM-DD"
	msgConsultationNotFound  = "консультация не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultations/{consultationId}/availability
// Query params: date (required, джалали YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем consultationId из URL
	consultationIDStr := vars["consultationId"]
	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultations/{id}/availability - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /consultations/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом джалали-даты)
	useCaseReq, err := ToUseCaseRequest(consultationID, dateStr)
	if err != nil {
		h.logger.Warn("GET /consultations/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrConsultationNotFound):
			h.logger.Warn("GET /consultations/{id}/availability - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /consultations/{id}/availability - Invalid input: consultation_id=%d, error=%v", consultationID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /consultations/{id}/availability - Failed to get availability: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /consultations/{id}/availability - Availability retrieved successfully: consultation_id=%d, date=%s, open=%t, slots_count=%d",
		consultationID, dateStr, result.Open, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
