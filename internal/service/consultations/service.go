package consultations

import (
	"context"
	"errors"
	"fmt"

	"github.com/moshavereh/booking-service/internal/domain"
	consultationRepo "github.com/moshavereh/booking-service/internal/infra/storage/consultation"
	"github.com/moshavereh/booking-service/internal/service/consultations/models"
	"github.com/moshavereh/booking-service/pkg/types"
)

// Service административный CRUD консультаций.
// Изменение длительности сессии или рабочих окон не трогает уже созданные
// брони: они хранят собственный снимок данных, сверка не выполняется.
type Service struct {
	consultationRepo ConsultationRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса консультаций
func NewService(consultationRepo ConsultationRepository, logger Logger) *Service {
	return &Service{
		consultationRepo: consultationRepo,
		logger:           logger,
	}
}

// Create создает консультацию
func (s *Service) Create(ctx context.Context, req *models.UpsertConsultationRequest) (*models.ConsultationResponse, error) {
	s.logger.Info("Create: creating consultation title=%q", req.Title)

	consultation, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.consultationRepo.Create(ctx, consultation)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: consultation id=%d created", created.ID)
	return models.FromDomainConsultation(created), nil
}

// GetByID получает консультацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConsultationResponse, error) {
	s.logger.Info("GetByID: fetching consultation id=%d", id)

	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("GetByID: consultation id=%d not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("GetByID: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConsultation(consultation), nil
}

// List получает все консультации
func (s *Service) List(ctx context.Context) (*models.ConsultationListResponse, error) {
	s.logger.Info("List: fetching consultations")

	consultations, err := s.consultationRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d consultations", len(consultations))
	return models.FromDomainConsultationList(consultations), nil
}

// Update обновляет консультацию
func (s *Service) Update(ctx context.Context, id int64, req *models.UpsertConsultationRequest) (*models.ConsultationResponse, error) {
	s.logger.Info("Update: updating consultation id=%d", id)

	consultation, err := s.toDomain(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.consultationRepo.Update(ctx, id, consultation)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Update: consultation id=%d not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("Update: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: consultation id=%d updated", id)
	return models.FromDomainConsultation(updated), nil
}

// Delete удаляет консультацию
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting consultation id=%d", id)

	if err := s.consultationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Delete: consultation id=%d not found", id)
			return ErrConsultationNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: consultation id=%d deleted", id)
	return nil
}

// toDomain валидирует запрос и конвертирует его в доменную модель
func (s *Service) toDomain(req *models.UpsertConsultationRequest) (*domain.Consultation, error) {
	if req.Title == "" || len(req.Title) > domain.MaxTitleLength {
		return nil, fmt.Errorf("%w: title is required and must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if req.ConsultantName == "" || len(req.ConsultantName) > domain.MaxConsultantNameLength {
		return nil, fmt.Errorf("%w: consultantName is required and must be at most %d characters", ErrInvalidInput, domain.MaxConsultantNameLength)
	}
	if len(req.Description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if req.SessionDurationMinutes < domain.MinSessionDurationMinutes ||
		req.SessionDurationMinutes > domain.MaxSessionDurationMinutes {
		return nil, fmt.Errorf("%w: sessionDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	windows, err := validateWindows(req.WorkingWindows)
	if err != nil {
		return nil, err
	}

	return &domain.Consultation{
		Title:                  req.Title,
		ConsultantName:         req.ConsultantName,
		Description:            req.Description,
		SessionDurationMinutes: req.SessionDurationMinutes,
		WorkingWindows:         windows,
		ThursdaysOpen:          req.ThursdaysOpen,
	}, nil
}

// validateWindows проверяет рабочие окна: формат времени, start < end,
// окна в заданном порядке не пересекаются
func validateWindows(windows []models.WorkingWindow) ([]domain.WorkingWindow, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: at least one working window is required", ErrInvalidWindows)
	}
	if len(windows) > domain.MaxWorkingWindows {
		return nil, fmt.Errorf("%w: at most %d working windows are allowed", ErrInvalidWindows, domain.MaxWorkingWindows)
	}

	result := make([]domain.WorkingWindow, len(windows))

	for i, w := range windows {
		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindows, i, err)
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: %v", ErrInvalidWindows, i, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: window %d: start %s must be before end %s", ErrInvalidWindows, i, start, end)
		}
		if i > 0 && result[i-1].EndTime.IsAfter(start) {
			return nil, fmt.Errorf("%w: window %d overlaps previous window", ErrInvalidWindows, i)
		}
		result[i] = domain.WorkingWindow{StartTime: start, EndTime: end}
	}

	return result, nil
}
