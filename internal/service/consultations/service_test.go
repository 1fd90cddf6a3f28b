package consultations

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moshavereh/booking-service/internal/domain"
	consultationStorage "github.com/moshavereh/booking-service/internal/infra/storage/consultation"
	"github.com/moshavereh/booking-service/internal/service/consultations/models"
)

type fakeConsultationRepo struct {
	byID    map[int64]*domain.Consultation
	created *domain.Consultation
	updated *domain.Consultation
	deleted []int64
	nextID  int64
}

func newFakeRepo(consultations ...*domain.Consultation) *fakeConsultationRepo {
	f := &fakeConsultationRepo{byID: make(map[int64]*domain.Consultation)}
	for _, c := range consultations {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeConsultationRepo) Create(ctx context.Context, consultation *domain.Consultation) (*domain.Consultation, error) {
	f.nextID++
	created := *consultation
	created.ID = f.nextID
	f.created = &created
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeConsultationRepo) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, consultationStorage.ErrConsultationNotFound
	}
	return c, nil
}

func (f *fakeConsultationRepo) List(ctx context.Context) ([]*domain.Consultation, error) {
	result := make([]*domain.Consultation, 0, len(f.byID))
	for _, c := range f.byID {
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeConsultationRepo) Update(ctx context.Context, id int64, consultation *domain.Consultation) (*domain.Consultation, error) {
	if _, ok := f.byID[id]; !ok {
		return nil, consultationStorage.ErrConsultationNotFound
	}
	updated := *consultation
	updated.ID = id
	f.updated = &updated
	f.byID[id] = &updated
	return &updated, nil
}

func (f *fakeConsultationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return consultationStorage.ErrConsultationNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validUpsertRequest() *models.UpsertConsultationRequest {
	return &models.UpsertConsultationRequest{
		Title:                  "Семейная консультация",
		ConsultantName:         "Консультант",
		SessionDurationMinutes: 30,
		WorkingWindows: []models.WorkingWindow{
			{StartTime: "08:00", EndTime: "12:00"},
			{StartTime: "14:00", EndTime: "18:00"},
		},
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), validUpsertRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Len(t, resp.WorkingWindows, 2)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Семейная консультация", repo.created.Title)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	tests := []struct {
		name    string
		mutate  func(*models.UpsertConsultationRequest)
		wantErr error
	}{
		{
			name:    "empty title",
			mutate:  func(r *models.UpsertConsultationRequest) { r.Title = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name: "title too long",
			mutate: func(r *models.UpsertConsultationRequest) {
				r.Title = strings.Repeat("x", domain.MaxTitleLength+1)
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty consultant name",
			mutate:  func(r *models.UpsertConsultationRequest) { r.ConsultantName = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero duration",
			mutate:  func(r *models.UpsertConsultationRequest) { r.SessionDurationMinutes = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name: "duration below minimum",
			mutate: func(r *models.UpsertConsultationRequest) {
				r.SessionDurationMinutes = domain.MinSessionDurationMinutes - 1
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "duration above maximum",
			mutate: func(r *models.UpsertConsultationRequest) {
				r.SessionDurationMinutes = domain.MaxSessionDurationMinutes + 1
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no windows",
			mutate:  func(r *models.UpsertConsultationRequest) { r.WorkingWindows = nil },
			wantErr: ErrInvalidWindows,
		},
		{
			name: "malformed window time",
			mutate: func(r *models.UpsertConsultationRequest) {
				r.WorkingWindows = []models.WorkingWindow{{StartTime: "8:00", EndTime: "12:00"}}
			},
			wantErr: ErrInvalidWindows,
		},
		{
			name: "start not before end",
			mutate: func(r *models.UpsertConsultationRequest) {
				r.WorkingWindows = []models.WorkingWindow{{StartTime: "12:00", EndTime: "12:00"}}
			},
			wantErr: ErrInvalidWindows,
		},
		{
			name: "overlapping windows",
			mutate: func(r *models.UpsertConsultationRequest) {
				r.WorkingWindows = []models.WorkingWindow{
					{StartTime: "08:00", EndTime: "12:00"},
					{StartTime: "11:00", EndTime: "14:00"},
				}
			},
			wantErr: ErrInvalidWindows,
		},
		{
			name: "too many windows",
			mutate: func(r *models.UpsertConsultationRequest) {
				windows := make([]models.WorkingWindow, domain.MaxWorkingWindows+1)
				for i := range windows {
					windows[i] = models.WorkingWindow{StartTime: "08:00", EndTime: "09:00"}
				}
				r.WorkingWindows = windows
			},
			wantErr: ErrInvalidWindows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpsertRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_AdjacentWindowsAllowed(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	req := validUpsertRequest()
	// конец первого окна совпадает с началом второго - это не пересечение
	req.WorkingWindows = []models.WorkingWindow{
		{StartTime: "08:00", EndTime: "12:00"},
		{StartTime: "12:00", EndTime: "16:00"},
	}

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestGetByID(t *testing.T) {
	existing := &domain.Consultation{ID: 5, Title: "Тест", ConsultantName: "К", SessionDurationMinutes: 30}
	svc := NewService(newFakeRepo(existing), nopLogger{})

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)

	_, err = svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestUpdate(t *testing.T) {
	existing := &domain.Consultation{ID: 5, Title: "Старое", ConsultantName: "К", SessionDurationMinutes: 30}
	repo := newFakeRepo(existing)
	svc := NewService(repo, nopLogger{})

	req := validUpsertRequest()
	resp, err := svc.Update(context.Background(), 5, req)
	require.NoError(t, err)
	assert.Equal(t, "Семейная консультация", resp.Title)

	_, err = svc.Update(context.Background(), 42, validUpsertRequest())
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestDelete(t *testing.T) {
	existing := &domain.Consultation{ID: 5, Title: "Тест", ConsultantName: "К", SessionDurationMinutes: 30}
	repo := newFakeRepo(existing)
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, []int64{5}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrConsultationNotFound)
}
