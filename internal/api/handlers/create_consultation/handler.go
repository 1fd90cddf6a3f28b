package create_consultation

import (
	"errors"
	"net/http"

	"github.com/moshavereh/booking-service/internal/api/handlers"
	"github.com/moshavereh/booking-service/internal/service/consultations"
	"github.com/moshavereh/booking-service/internal/service/consultations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindows     = "некорректная конфигурация рабочих окон"
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

// Handle POST /api/v1/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consultations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrInvalidWindows):
			h.logger.Warn("POST /consultations - Invalid working windows: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindows)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("POST /consultations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /consultations - Failed to create consultation: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /consultations - Consultation created successfully: consultation_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
