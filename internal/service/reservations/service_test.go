package reservations

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moshavereh/booking-service/internal/domain"
	reservationStorage "github.com/moshavereh/booking-service/internal/infra/storage/reservation"
	"github.com/moshavereh/booking-service/internal/service/reservations/models"
	"github.com/moshavereh/booking-service/pkg/ptr"
)

type fakeReservationRepo struct {
	byID       map[int64]*domain.Reservation
	statusSet  map[int64]domain.ReservationStatus
	canceled   map[int64]string
	listResult []*domain.Reservation
	lastFilter *domain.ReservationsFilter
	lastStatus *domain.ReservationStatus
	cancelErr  error
	updateErr  error
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeReservationRepo {
	f := &fakeReservationRepo{
		byID:      make(map[int64]*domain.Reservation),
		statusSet: make(map[int64]domain.ReservationStatus),
		canceled:  make(map[int64]string),
	}
	for _, r := range reservations {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationStorage.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.lastStatus = status
	return f.listResult, nil
}

func (f *fakeReservationRepo) GetByConsultationWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = &filter
	return f.listResult, nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusSet[id] = status
	return nil
}

func (f *fakeReservationRepo) Cancel(ctx context.Context, id int64, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.canceled[id] = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              1,
		ConsultationID:  10,
		CustomerID:      100,
		ReservationDate: time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC),
		StartTime:       "08:30",
		DurationMinutes: 30,
		Status:          domain.StatusPending,
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(newFakeRepo(pendingReservation()), nopLogger{})

	t.Run("owner sees the reservation with jalali date", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "1404-06-15", resp.Date)
	})

	t.Run("other customer is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, 200)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, 100)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestGetCustomerReservations(t *testing.T) {
	repo := newFakeRepo()
	repo.listResult = []*domain.Reservation{pendingReservation()}
	svc := NewService(repo, nopLogger{})

	t.Run("without status filter", func(t *testing.T) {
		resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{CustomerID: 100})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
		assert.Nil(t, repo.lastStatus)
	})

	t.Run("with status filter", func(t *testing.T) {
		_, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
			CustomerID: 100,
			Status:     ptr.Ptr("canceled"),
		})
		require.NoError(t, err)
		require.NotNil(t, repo.lastStatus)
		assert.Equal(t, domain.StatusCanceled, *repo.lastStatus)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
			CustomerID: 100,
			Status:     ptr.Ptr("unknown"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetConsultationReservations(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	date := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetConsultationReservations(context.Background(), &models.GetConsultationReservationsRequest{
		ConsultationID:  10,
		Date:            &date,
		IncludeInactive: true,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(10), repo.lastFilter.ConsultationID)
	assert.True(t, repo.lastFilter.IncludeInactive)
	require.NotNil(t, repo.lastFilter.Date)
	assert.True(t, repo.lastFilter.Date.Equal(date))
}

func TestCancel(t *testing.T) {
	t.Run("pending reservation is canceled", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			CustomerID: 100,
			Reason:     "передумал",
		})
		require.NoError(t, err)
		assert.Equal(t, "передумал", repo.canceled[1])
	})

	t.Run("done reservation cannot be canceled", func(t *testing.T) {
		r := pendingReservation()
		r.Status = domain.StatusDone
		svc := NewService(newFakeRepo(r), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("canceled reservation cannot be canceled again", func(t *testing.T) {
		r := pendingReservation()
		r.Status = domain.StatusCanceled
		svc := NewService(newFakeRepo(r), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("other customer is denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 200})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("concurrent transition loses to the update guard", func(t *testing.T) {
		// бронь прочитана как pending, но UPDATE не нашел pending-строку:
		// конкурирующий переход успел раньше
		repo := newFakeRepo(pendingReservation())
		repo.cancelErr = reservationStorage.ErrReservationNotPending
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{CustomerID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("reason too long", func(t *testing.T) {
		svc := NewService(newFakeRepo(pendingReservation()), nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			CustomerID: 100,
			Reason:     strings.Repeat("x", domain.MaxCancellationReasonLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestMarkDone(t *testing.T) {
	t.Run("pending reservation is marked done", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		svc := NewService(repo, nopLogger{})

		err := svc.MarkDone(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDone, repo.statusSet[1])
	})

	t.Run("concurrent transition loses to the update guard", func(t *testing.T) {
		repo := newFakeRepo(pendingReservation())
		repo.updateErr = reservationStorage.ErrReservationNotPending
		svc := NewService(repo, nopLogger{})

		err := svc.MarkDone(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCannotMarkDone)
	})

	t.Run("terminal statuses rejected", func(t *testing.T) {
		for _, status := range []domain.ReservationStatus{domain.StatusDone, domain.StatusCanceled} {
			r := pendingReservation()
			r.Status = status
			svc := NewService(newFakeRepo(r), nopLogger{})

			err := svc.MarkDone(context.Background(), 1)
			assert.ErrorIs(t, err, ErrCannotMarkDone, "status %s", status)
		}
	})
}
