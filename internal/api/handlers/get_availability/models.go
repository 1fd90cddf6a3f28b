package get_availability

import (
	"github.com/moshavereh/booking-service/internal/calendar"
	getAvailability "github.com/moshavereh/booking-service/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Bookable        bool   `json:"bookable"`
}

// AvailabilityResponse HTTP модель доступности дня
type AvailabilityResponse struct {
	ConsultationID int64          `json:"consultationId"`
	Date           string         `json:"date"`
	Open           bool           `json:"open"`
	Slots          []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case.
// Дата принимается в джалали-формате YYYY-MM-DD.
func ToUseCaseRequest(consultationID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		ConsultationID: consultationID,
		Date:           date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Bookable:        s.Bookable,
		}
	}

	return &AvailabilityResponse{
		ConsultationID: resp.ConsultationID,
		Date:           calendar.FormatDate(resp.Date),
		Open:           resp.Open,
		Slots:          slots,
	}
}
