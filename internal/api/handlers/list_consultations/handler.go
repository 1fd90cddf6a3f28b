package list_consultations

import (
	"net/http"

	"github.com/moshavereh/booking-service/internal/api/handlers"
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

// Handle GET /api/v1/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /consultations - Failed to list consultations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /consultations - Consultations retrieved successfully: count=%d", len(result.Consultations))
	handlers.RespondJSON(w, http.StatusOK, result.Consultations)
}
