package delete_consultation

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

// Handle DELETE /api/v1/consultations/{consultationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем consultationId из URL
	vars := mux.Vars(r)
	consultationIDStr := vars["consultationId"]

	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /consultations/{id} - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	if err := h.service.Delete(r.Context(), consultationID); err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("DELETE /consultations/{id} - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /consultations/{id} - Failed to delete consultation: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /consultations/{id} - Consultation deleted successfully: consultation_id=%d", consultationID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
