package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/moshavereh/booking-service/internal/domain"
	reservationRepo "github.com/moshavereh/booking-service/internal/infra/storage/reservation"
	"github.com/moshavereh/booking-service/internal/service/reservations/models"
)

// Service сервис для работы с бронями вне пути создания:
// чтение, отмена и завершение. Переходы статусов подчиняются
// машине состояний домена: pending -> done, pending -> canceled,
// из done и canceled переходов нет.
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронь по ID.
// Клиент видит только собственную бронь.
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for customer=%d", id, customerID)

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to reservation id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// GetCustomerReservations получает историю броней клиента
func (s *Service) GetCustomerReservations(ctx context.Context, req *models.GetCustomerReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCustomerReservations: fetching reservations for customer=%d", req.CustomerID)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, ok := models.ToDomainReservationStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetCustomerReservations: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerReservations: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerReservations: fetched %d reservations for customer=%d", len(reservations), req.CustomerID)
	return models.FromDomainReservationList(reservations), nil
}

// GetConsultationReservations получает брони консультации (админский просмотр)
func (s *Service) GetConsultationReservations(ctx context.Context, req *models.GetConsultationReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetConsultationReservations: consultation=%d", req.ConsultationID)

	filter := domain.ReservationsFilter{
		ConsultationID:  req.ConsultationID,
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	}

	if req.Status != nil {
		status, ok := models.ToDomainReservationStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetConsultationReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetByConsultationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultationReservations: repository error for consultation=%d: %v", req.ConsultationID, err)
		return nil, fmt.Errorf("%w: GetConsultationReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConsultationReservations: fetched %d reservations for consultation=%d",
		len(reservations), req.ConsultationID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронь.
// Отмена не открывает старую строку заново: слот освобождается, и повторное
// бронирование создает новую бронь.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: canceling reservation id=%d by customer=%d", reservationID, req.CustomerID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	if reservation.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to reservation id=%d", req.CustomerID, reservationID)
		return ErrAccessDenied
	}

	if !reservation.CanBeCanceled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be canceled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.Reason); err != nil {
		// Бронь успела покинуть pending между чтением и UPDATE
		if errors.Is(err, reservationRepo.ErrReservationNotPending) {
			s.logger.Warn("Cancel: reservation id=%d left pending concurrently", reservationID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: reservation id=%d canceled", reservationID)
	return nil
}

// MarkDone завершает бронь (административное действие)
func (s *Service) MarkDone(ctx context.Context, reservationID int64) error {
	s.logger.Info("MarkDone: marking reservation id=%d as done", reservationID)

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	if !reservation.CanBeMarkedDone() {
		s.logger.Warn("MarkDone: reservation id=%d cannot be marked done, status=%s", reservationID, reservation.Status)
		return ErrCannotMarkDone
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.StatusDone); err != nil {
		// Бронь успела покинуть pending между чтением и UPDATE
		if errors.Is(err, reservationRepo.ErrReservationNotPending) {
			s.logger.Warn("MarkDone: reservation id=%d left pending concurrently", reservationID)
			return ErrCannotMarkDone
		}
		s.logger.Error("MarkDone: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: MarkDone - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkDone: reservation id=%d marked done", reservationID)
	return nil
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return reservation, nil
}
