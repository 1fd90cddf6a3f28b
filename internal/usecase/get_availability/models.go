package get_availability

import (
	"time"

	"github.com/moshavereh/booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ConsultationID int64     // ID консультации
	Date           time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов дня.
// Open=false означает, что день закрыт политикой выходных; это не то же
// самое, что открытый, но полностью занятый день (Open=true, все слоты
// с Bookable=false).
type Response struct {
	ConsultationID int64
	Date           time.Time
	Open           bool
	Slots          []domain.AvailabilitySlot
}
