package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/moshavereh/booking-service/internal/calendar"
	"github.com/moshavereh/booking-service/internal/domain"
	consultationRepo "github.com/moshavereh/booking-service/internal/infra/storage/consultation"
	"github.com/moshavereh/booking-service/pkg/ptr"
	"github.com/moshavereh/booking-service/pkg/types"
)

// UseCase use case для получения слотов дня с признаком доступности.
// Чистый read path: ничего не блокирует и не пишет, результат - снимок,
// который может устареть к моменту бронирования; путь создания брони
// перепроверяет всё заново.
type UseCase struct {
	consultationRepo ConsultationRepository
	reservationRepo  ReservationRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		reservationRepo:  reservationRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: consultation=%d, date=%s",
		req.ConsultationID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время один раз на весь запрос.
	// "Сегодня" и время суток считаются по тегеранским часам,
	// а не по локали сервера.
	now := uc.timeProvider.Now().In(calendar.Location())

	// 3. Получаем консультацию с рабочими окнами.
	// Этот снимок конфигурации используется до конца запроса; параллельное
	// редактирование консультации не перечитывается.
	consultation, err := uc.consultationRepo.GetByID(ctx, req.ConsultationID)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			uc.logger.Warn("GetAvailability: consultation id=%d not found", req.ConsultationID)
			return nil, ErrConsultationNotFound
		}
		uc.logger.Error("GetAvailability: failed to get consultation id=%d: %v", req.ConsultationID, err)
		return nil, fmt.Errorf("%w: failed to get consultation: %v", ErrInternal, err)
	}

	// 4. Политика выходных: закрытый день возвращается сразу, без слотов
	if !consultation.IsOpenOn(req.Date) {
		uc.logger.Info("GetAvailability: consultation id=%d is closed on %s",
			req.ConsultationID, req.Date.Format(domain.DateFormat))
		return &Response{
			ConsultationID: req.ConsultationID,
			Date:           req.Date,
			Open:           false,
			Slots:          []domain.AvailabilitySlot{},
		}, nil
	}

	// 5. Генерируем слоты-кандидаты и убираем дубли пересекающихся окон
	candidates := domain.DedupeSlots(
		domain.CandidateSlots(consultation.WorkingWindows, consultation.SessionDurationMinutes),
	)

	// 6. Для сегодняшней даты отбрасываем уже прошедшие слоты
	if isSameDay(req.Date, now) {
		remaining := make([]types.TimeString, 0, len(candidates))
		for _, slot := range candidates {
			if !domain.SlotElapsed(slot, now) {
				remaining = append(remaining, slot)
			}
		}
		candidates = remaining
	}

	// 7. Получаем живые брони на эту дату
	filter := domain.ReservationsFilter{
		ConsultationID:  req.ConsultationID,
		Date:            ptr.Ptr(req.Date),
		IncludeInactive: false,
	}

	reservations, err := uc.reservationRepo.GetByConsultationWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	held := make(map[types.TimeString]struct{}, len(reservations))
	for _, reservation := range reservations {
		if reservation.IsLive() {
			held[reservation.StartTime] = struct{}{}
		}
	}

	// 8. Размечаем доступность. Занятые слоты остаются в ответе с
	// Bookable=false, чтобы клиент мог показать их как "занято".
	slots := make([]domain.AvailabilitySlot, len(candidates))
	for i, slot := range candidates {
		_, taken := held[slot]
		slots[i] = domain.AvailabilitySlot{
			StartTime:       slot,
			DurationMinutes: consultation.SessionDurationMinutes,
			Bookable:        !taken,
		}
	}

	uc.logger.Info("GetAvailability: %d slots for consultation=%d, date=%s",
		len(slots), req.ConsultationID, req.Date.Format(domain.DateFormat))

	return &Response{
		ConsultationID: req.ConsultationID,
		Date:           req.Date,
		Open:           true,
		Slots:          slots,
	}, nil
}
