package get_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/moshavereh/booking-service/internal/api/handlers"
	"github.com/moshavereh/booking-service/internal/service/consultations"
)

const (
	msgInvalidConsultationID = "некорректный ID консультации"
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

// Handle GET /api/v1/consultations/{consultationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем consultationId из URL
	vars := mux.Vars(r)
	consultationIDStr := vars["consultationId"]

	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultations/{id} - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	consultation, err := h.service.GetByID(r.Context(), consultationID)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("GET /consultations/{id} - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /consultations/{id} - Failed to get consultation: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultations/{id} - Consultation retrieved successfully: consultation_id=%d", consultationID)
	handlers.RespondJSON(w, http.StatusOK, consultation)
}
