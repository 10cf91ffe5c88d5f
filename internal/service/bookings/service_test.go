package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	barberRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/barber"
	bookingRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/booking"
	"github.com/gcare-app/GCare-BookingService/internal/service/bookings/models"
	"github.com/gcare-app/GCare-BookingService/pkg/ptr"
)

// --- фейки ---

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	// afterGet срабатывает один раз после чтения - имитирует параллельный
	// переход, попавший между чтением и условной записью
	afterGet func()
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}
	return &copied, nil
}

func (f *fakeBookingRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.SalonID != filter.SalonID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	booking.Status = to
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, from domain.BookingStatus, reason string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if booking.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	now := time.Now()
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = &reason
	booking.CancelledAt = &now
	return nil
}

type fakeBarberRepo struct {
	statuses map[int64]domain.BarberStatus
}

func (f *fakeBarberRepo) SetStatusIf(_ context.Context, id int64, from, to domain.BarberStatus) error {
	current, ok := f.statuses[id]
	if !ok {
		return barberRepo.ErrBarberNotFound
	}
	if current != from {
		return barberRepo.ErrStatusConflict
	}
	f.statuses[id] = to
	return nil
}

type recordNotifier struct {
	transitions []string
}

func (n *recordNotifier) BookingTransition(_ context.Context, _, _ int64, from, to string) {
	n.transitions = append(n.transitions, from+"->"+to)
}

// --- фикстуры ---

func upcomingBooking(id int64, barberID *int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		SalonID:         1,
		CustomerName:    "Alice",
		CustomerPhone:   "+15550001",
		ServiceID:       5,
		BarberID:        barberID,
		BookingDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Type:            domain.BookingTypeSlot,
		Status:          domain.StatusUpcoming,
		ServiceName:     "Haircut",
		Price:           25,
	}
}

func newTestService(bookings *fakeBookingRepo, barbers *fakeBarberRepo) (*Service, *recordNotifier) {
	if barbers == nil {
		barbers = &fakeBarberRepo{statuses: map[int64]domain.BarberStatus{}}
	}
	notifier := &recordNotifier{}
	svc := NewService(bookings, barbers, fakeTxManager{}, notifier, stubLogger{})
	return svc, notifier
}

// --- тесты ---

func TestAcceptPendingBooking(t *testing.T) {
	booking := upcomingBooking(42, nil)
	booking.Status = domain.StatusPending
	repo := newFakeBookingRepo(booking)
	svc, notifier := newTestService(repo, nil)

	resp, err := svc.Accept(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusUpcoming), resp.Status)
	assert.Equal(t, []string{"pending->upcoming"}, notifier.transitions)
}

func TestStartMarksBarberBusy(t *testing.T) {
	barbers := &fakeBarberRepo{statuses: map[int64]domain.BarberStatus{7: domain.BarberActive}}
	repo := newFakeBookingRepo(upcomingBooking(42, ptr.Ptr(int64(7))))
	svc, _ := newTestService(repo, barbers)

	resp, err := svc.Start(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), resp.Status)
	assert.Equal(t, domain.BarberBusy, barbers.statuses[7])
}

func TestStartFailsWhenBarberBusy(t *testing.T) {
	barbers := &fakeBarberRepo{statuses: map[int64]domain.BarberStatus{7: domain.BarberBusy}}
	repo := newFakeBookingRepo(upcomingBooking(42, ptr.Ptr(int64(7))))
	svc, notifier := newTestService(repo, barbers)

	_, err := svc.Start(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrBarberUnavailable)

	// Статус бронирования не изменился, событий не было
	assert.Equal(t, domain.StatusUpcoming, repo.bookings[42].Status)
	assert.Empty(t, notifier.transitions)
}

func TestCompleteReleasesBarber(t *testing.T) {
	barbers := &fakeBarberRepo{statuses: map[int64]domain.BarberStatus{7: domain.BarberBusy}}
	booking := upcomingBooking(42, ptr.Ptr(int64(7)))
	booking.Status = domain.StatusInProgress
	repo := newFakeBookingRepo(booking)
	svc, _ := newTestService(repo, barbers)

	resp, err := svc.Complete(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.BarberActive, barbers.statuses[7])
}

func TestCompleteToleratesManuallyFreedBarber(t *testing.T) {
	// Владелец вручную вернул мастера в active - завершение не блокируется
	barbers := &fakeBarberRepo{statuses: map[int64]domain.BarberStatus{7: domain.BarberActive}}
	booking := upcomingBooking(42, ptr.Ptr(int64(7)))
	booking.Status = domain.StatusInProgress
	repo := newFakeBookingRepo(booking)
	svc, _ := newTestService(repo, barbers)

	resp, err := svc.Complete(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestInvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
		action func(svc *Service) error
	}{
		{"accept upcoming", domain.StatusUpcoming, func(svc *Service) error {
			_, err := svc.Accept(context.Background(), 1, 42)
			return err
		}},
		{"start pending", domain.StatusPending, func(svc *Service) error {
			_, err := svc.Start(context.Background(), 1, 42)
			return err
		}},
		{"complete upcoming", domain.StatusUpcoming, func(svc *Service) error {
			_, err := svc.Complete(context.Background(), 1, 42)
			return err
		}},
		{"accept completed", domain.StatusCompleted, func(svc *Service) error {
			_, err := svc.Accept(context.Background(), 1, 42)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := upcomingBooking(42, nil)
			booking.Status = tt.status
			svc, _ := newTestService(newFakeBookingRepo(booking), nil)

			assert.ErrorIs(t, tt.action(svc), ErrInvalidTransition)
		})
	}
}

func TestStartLosesRaceWithCancel(t *testing.T) {
	// Параллельная отмена легла между чтением и записью: условная запись
	// не проходит, отменённое бронирование не переводится в in-progress
	repo := newFakeBookingRepo(upcomingBooking(42, nil))
	repo.afterGet = func() {
		repo.bookings[42].Status = domain.StatusCancelled
	}
	svc, notifier := newTestService(repo, nil)

	_, err := svc.Start(context.Background(), 1, 42)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[42].Status)
	assert.Empty(t, notifier.transitions)
}

func TestCancelLosesRaceWithStart(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(42, nil))
	repo.afterGet = func() {
		repo.bookings[42].Status = domain.StatusInProgress
	}
	svc, notifier := newTestService(repo, nil)

	_, err := svc.Cancel(context.Background(), 1, 42, &models.CancelBookingRequest{
		CancellationReason: "customer asked to cancel",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusInProgress, repo.bookings[42].Status)
	assert.Empty(t, notifier.transitions)
}

func TestCancelBooking(t *testing.T) {
	repo := newFakeBookingRepo(upcomingBooking(42, nil))
	svc, notifier := newTestService(repo, nil)

	resp, err := svc.Cancel(context.Background(), 1, 42, &models.CancelBookingRequest{
		CancellationReason: "customer asked to reschedule",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "customer asked to reschedule", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []string{"upcoming->cancelled"}, notifier.transitions)
}

func TestCancelInProgressBookingFails(t *testing.T) {
	booking := upcomingBooking(42, nil)
	booking.Status = domain.StatusInProgress
	svc, _ := newTestService(newFakeBookingRepo(booking), nil)

	_, err := svc.Cancel(context.Background(), 1, 42, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelRejectsOverlongReason(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(upcomingBooking(42, nil)), nil)

	reason := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range reason {
		reason[i] = 'x'
	}
	_, err := svc.Cancel(context.Background(), 1, 42, &models.CancelBookingRequest{
		CancellationReason: string(reason),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestForeignBookingIsDenied(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(upcomingBooking(42, nil)), nil)

	_, err := svc.Accept(context.Background(), 2, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Accept(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetSalonBookingsRejectsBadFilter(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(), nil)

	badStatus := "unknown"
	_, err := svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{
		SalonID: 1,
		Status:  &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonBookingsExcludesCancelledByDefault(t *testing.T) {
	active := upcomingBooking(42, nil)
	cancelled := upcomingBooking(43, nil)
	cancelled.Status = domain.StatusCancelled
	svc, _ := newTestService(newFakeBookingRepo(active, cancelled), nil)

	resp, err := svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{SalonID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(42), resp.Bookings[0].ID)
}
