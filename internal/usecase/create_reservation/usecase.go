package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/moshavereh/booking-service/internal/calendar"
	"github.com/moshavereh/booking-service/internal/domain"
	consultationRepo "github.com/moshavereh/booking-service/internal/infra/storage/consultation"
	reservationRepo "github.com/moshavereh/booking-service/internal/infra/storage/reservation"
	"github.com/moshavereh/booking-service/pkg/ptr"
	"github.com/moshavereh/booking-service/pkg/types"
)

// UseCase use case создания брони - единственный путь записи.
//
// Вся проверка и вставка выполняются в одной SERIALIZABLE транзакции:
// брони дня читаются с блокировкой, слот проверяется на занятость, затем
// вставляется новая строка. Частичный уникальный индекс в БД дублирует
// гарантию на случай конкурирующих вставок - из двух одновременных попыток
// на один слот ровно одна завершается успехом, вторая получает ErrSlotConflict.
type UseCase struct {
	consultationRepo ConsultationRepository
	reservationRepo  ReservationRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		reservationRepo:  reservationRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, consultation=%d, date=%s, time=%s",
		req.CustomerID, req.ConsultationID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время фиксируется один раз; проверка "слот уже прошёл"
	// и решение о создании видят одно и то же now. "Сегодня" и время суток
	// считаются по тегеранским часам, а не по локали сервера.
	now := uc.timeProvider.Now().In(calendar.Location())

	var result *domain.Reservation

	// 3. Все проверки и вставка - в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Консультация читается внутри транзакции: проверка кандидатов
		// и вставка опираются на один снимок конфигурации
		consultation, err := uc.consultationRepo.GetByID(txCtx, req.ConsultationID)
		if err != nil {
			if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
				uc.logger.Warn("CreateReservation: consultation id=%d not found", req.ConsultationID)
				return ErrConsultationNotFound
			}
			uc.logger.Error("CreateReservation: failed to get consultation id=%d: %v", req.ConsultationID, err)
			return fmt.Errorf("%w: failed to get consultation: %v", ErrInternal, err)
		}

		// 3.2. Политика выходных
		if !consultation.IsOpenOn(req.Date) {
			uc.logger.Warn("CreateReservation: consultation id=%d is closed on %s",
				req.ConsultationID, req.Date.Format(domain.DateFormat))
			return ErrConsultationClosed
		}

		// 3.3. Дата в прошлом не бронируется
		if isDateInPast(req.Date, now) {
			uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
			return fmt.Errorf("%w: date is in the past", ErrInvalidSlot)
		}

		// 3.4. Запрошенное время должно быть слотом-кандидатом генератора;
		// произвольные времена отклоняются
		candidates := domain.DedupeSlots(
			domain.CandidateSlots(consultation.WorkingWindows, consultation.SessionDurationMinutes),
		)
		if !containsSlot(candidates, req.StartTime) {
			uc.logger.Warn("CreateReservation: time %s is not a candidate slot for consultation id=%d",
				req.StartTime, req.ConsultationID)
			return fmt.Errorf("%w: %s is not a bookable start time", ErrInvalidSlot, req.StartTime)
		}

		// 3.5. Сегодняшний уже прошедший слот не бронируется
		if isSameDay(req.Date, now) && domain.SlotElapsed(req.StartTime, now) {
			uc.logger.Warn("CreateReservation: slot %s has already elapsed", req.StartTime)
			return fmt.Errorf("%w: slot has already elapsed", ErrInvalidSlot)
		}

		// 3.6. Читаем живые брони дня с блокировкой (FOR UPDATE)
		filter := domain.ReservationsFilter{
			ConsultationID:  req.ConsultationID,
			Date:            ptr.Ptr(req.Date),
			IncludeInactive: false,
		}

		reservations, err := uc.reservationRepo.GetByConsultationWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 3.7. Слот свободен, если ни одна живая бронь его не удерживает.
		// Отменённые брони слот не удерживают: после отмены слот
		// бронируется заново новой строкой.
		for _, reservation := range reservations {
			if reservation.IsLive() && reservation.StartTime == req.StartTime {
				uc.logger.Warn("CreateReservation: slot %s on %s already held by reservation id=%d",
					req.StartTime, req.Date.Format(domain.DateFormat), reservation.ID)
				return ErrSlotConflict
			}
		}

		// 3.8. Создаем бронь со снимком данных консультации
		reservation := &domain.Reservation{
			ConsultationID:    req.ConsultationID,
			CustomerID:        req.CustomerID,
			ReservationDate:   req.Date,
			StartTime:         req.StartTime,
			DurationMinutes:   consultation.SessionDurationMinutes,
			Status:            domain.StatusPending,
			ConsultationTitle: consultation.Title,
			ConsultantName:    consultation.ConsultantName,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Уникальный индекс отклонил вставку - гонку выиграла
			// конкурирующая бронь
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: lost the race for slot %s on %s",
					req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:                result.ID,
		CustomerID:        result.CustomerID,
		ConsultationID:    result.ConsultationID,
		ReservationDate:   result.ReservationDate,
		StartTime:         result.StartTime,
		DurationMinutes:   result.DurationMinutes,
		Status:            string(result.Status),
		ConsultationTitle: result.ConsultationTitle,
		ConsultantName:    result.ConsultantName,
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}

// containsSlot проверяет, что запрошенное время есть среди кандидатов
func containsSlot(candidates []types.TimeString, startTime types.TimeString) bool {
	for _, slot := range candidates {
		if slot == startTime {
			return true
		}
	}
	return false
}
