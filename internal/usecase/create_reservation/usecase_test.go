package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moshavereh/booking-service/internal/calendar"
	"github.com/moshavereh/booking-service/internal/domain"
	consultationStorage "github.com/moshavereh/booking-service/internal/infra/storage/consultation"
	reservationStorage "github.com/moshavereh/booking-service/internal/infra/storage/reservation"
	"github.com/moshavereh/booking-service/pkg/types"
)

type fakeConsultationRepo struct {
	consultation *domain.Consultation
	err          error
}

func (f *fakeConsultationRepo) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.consultation, nil
}

// fakeReservationRepo in-memory репозиторий, повторяющий семантику частичного
// уникального индекса: не более одной живой брони на слот
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.reservations {
		if existing.IsLive() &&
			existing.ConsultationID == reservation.ConsultationID &&
			existing.ReservationDate.Equal(reservation.ReservationDate) &&
			existing.StartTime == reservation.StartTime {
			return nil, reservationStorage.ErrSlotTaken
		}
	}

	f.nextID++
	created := *reservation
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

func (f *fakeReservationRepo) GetByConsultationWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.ConsultationID != filter.ConsultationID {
			continue
		}
		if filter.Date != nil && !r.ReservationDate.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeInactive && !r.IsLive() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	saturday = time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	friday   = time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
)

func testConsultation() *domain.Consultation {
	return &domain.Consultation{
		ID:                     1,
		Title:                  "Тестовая консультация",
		ConsultantName:         "Консультант",
		SessionDurationMinutes: 30,
		WorkingWindows: []domain.WorkingWindow{
			{StartTime: "08:00", EndTime: "09:00"},
		},
	}
}

func newTestUseCase(c *fakeConsultationRepo, r *fakeReservationRepo, now time.Time) *UseCase {
	uc := NewUseCase(c, r, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		CustomerID:     100,
		ConsultationID: 1,
		Date:           saturday,
		StartTime:      "08:30",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, repo, friday)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, int64(100), resp.CustomerID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("08:30"), resp.StartTime)
	assert.Equal(t, 30, resp.DurationMinutes, "session duration is snapshotted onto the reservation")
	assert.Equal(t, "Тестовая консультация", resp.ConsultationTitle)
	assert.Equal(t, "Консультант", resp.ConsultantName)
}

func TestExecute_SlotAlreadyHeld(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, repo, friday)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.CustomerID = 200
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_DoneReservationHoldsSlot(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{{
			ID:              1,
			ConsultationID:  1,
			ReservationDate: saturday,
			StartTime:       "08:30",
			Status:          domain.StatusDone,
		}},
		nextID: 1,
	}
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, repo, friday)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CancellationReopensSlot(t *testing.T) {
	repo := &fakeReservationRepo{
		reservations: []*domain.Reservation{{
			ID:              1,
			ConsultationID:  1,
			ReservationDate: saturday,
			StartTime:       "08:30",
			Status:          domain.StatusCanceled,
		}},
		nextID: 1,
	}
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, repo, friday)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// слот занят новой строкой, отменённая остаётся в истории
	assert.NotEqual(t, int64(1), resp.ID)
	assert.Len(t, repo.reservations, 2)
}

func TestExecute_UniqueIndexRaceMapsToConflict(t *testing.T) {
	// Проигрыш гонки на уровне БД: две проверки прошли, вторая вставка
	// отклонена уникальным индексом
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, repo, friday)

	// первая бронь вне usecase, имитирует конкурирующую вставку между
	// проверкой и Create
	_, err := repo.Create(context.Background(), &domain.Reservation{
		ConsultationID:  1,
		CustomerID:      999,
		ReservationDate: saturday,
		StartTime:       "08:30",
		Status:          domain.StatusPending,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ArbitraryTimeRejected(t *testing.T) {
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, &fakeReservationRepo{}, friday)

	req := validRequest()
	req.StartTime = "08:15" // валидное время, но не слот генератора
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, &fakeReservationRepo{}, friday.Add(-24*time.Hour))

	req := validRequest()
	req.Date = friday
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrConsultationClosed)
}

func TestExecute_PastDateRejected(t *testing.T) {
	now := saturday.Add(24 * time.Hour) // воскресенье
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, &fakeReservationRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_ElapsedSlotRejectedToday(t *testing.T) {
	// ровно в начало слота по тегеранским часам
	now := time.Date(2025, 9, 6, 8, 30, 0, 0, calendar.Location())
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, &fakeReservationRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_FutureSlotBookableToday(t *testing.T) {
	now := time.Date(2025, 9, 6, 8, 29, 0, 0, calendar.Location())
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, &fakeReservationRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ElapsedCheckUsesTehranWallClock(t *testing.T) {
	// часы сервера идут в UTC: 04:59 UTC = 08:29 по Тегерану - слот еще
	// бронируется, а минутой позже уже нет
	uc := newTestUseCase(
		&fakeConsultationRepo{consultation: testConsultation()},
		&fakeReservationRepo{},
		time.Date(2025, 9, 6, 4, 59, 0, 0, time.UTC),
	)
	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)

	uc = newTestUseCase(
		&fakeConsultationRepo{consultation: testConsultation()},
		&fakeReservationRepo{},
		time.Date(2025, 9, 6, 5, 0, 0, 0, time.UTC),
	)
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_ConsultationNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeConsultationRepo{err: consultationStorage.ErrConsultationNotFound}, &fakeReservationRepo{}, friday)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, &fakeReservationRepo{}, friday)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero customer", mutate: func(r *Request) { r.CustomerID = 0 }},
		{name: "zero consultation", mutate: func(r *Request) { r.ConsultationID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "8:30" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConcurrentBookingExactlyOneWins(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(&fakeConsultationRepo{consultation: testConsultation()}, repo, friday)

	const attempts = 20

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.CustomerID = int64(i + 1)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent booking wins the slot")
	assert.Len(t, repo.reservations, 1)
}
