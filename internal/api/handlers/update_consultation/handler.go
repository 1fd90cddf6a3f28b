package update_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/moshavereh/booking-service/internal/api/handlers"
	"github.com/moshavereh/booking-service/internal/service/consultations"
	"github.com/moshavereh/booking-service/internal/service/consultations/models"
)

const (
	msgInvalidConsultationID = "некорректный ID консультации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidWindows        = "некорректная конфигурация рабочих окон"
	msgNotFound              = "консультация не найдена"
)

type Handler struct {
	service ConsultationService
	logger  Logger
}

func NewHandler(service ConsultationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/consultations/{consultationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем consultationId из URL
	vars := mux.Vars(r)
	consultationIDStr := vars["consultationId"]

	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /consultations/{id} - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	var req models.UpsertConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /consultations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), consultationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PUT /consultations/{id} - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrInvalidWindows):
			h.logger.Warn("PUT /consultations/{id} - Invalid working windows: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondBadRequest(w, msgInvalidWindows)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("PUT /consultations/{id} - Invalid input: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /consultations/{id} - Failed to update consultation: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /consultations/{id} - Consultation updated successfully: consultation_id=%d", consultationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
