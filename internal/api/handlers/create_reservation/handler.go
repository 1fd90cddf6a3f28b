package create_reservation

import (
	"errors"
	"net/http"

	"github.com/moshavereh/booking-service/internal/api/handlers"
	"github.com/moshavereh/booking-service/internal/api/middleware"
	createReservation "github.com/moshavereh/booking-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты (джалали YYYY-MM-DD) или времени (HH:MM)"
	msgMissingUserID        = "отсутствует ID клиента"
	msgConsultationNotFound = "консультация не найдена"
	msgConsultationClosed   = "консультация закрыта в выбранную дату"
	msgInvalidSlot          = "некорректный временной слот"
	msgSlotConflict         = "выбранный слот уже занят"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing customer ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: customer_id=%d, consultation_id=%d, date=%s, start_time=%s",
				customerID, req.ConsultationID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrConsultationNotFound):
			h.logger.Warn("POST /reservations - Consultation not found: consultation_id=%d", req.ConsultationID)
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, createReservation.ErrConsultationClosed):
			h.logger.Warn("POST /reservations - Consultation closed: consultation_id=%d, date=%s",
				req.ConsultationID, req.Date)
			handlers.RespondBadRequest(w, msgConsultationClosed)

		case errors.Is(err, createReservation.ErrInvalidSlot):
			h.logger.Warn("POST /reservations - Invalid slot: consultation_id=%d, date=%s, start_time=%s",
				req.ConsultationID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, consultation_id=%d, error=%v",
				customerID, req.ConsultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, consultation_id=%d",
		result.ID, customerID, req.ConsultationID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
