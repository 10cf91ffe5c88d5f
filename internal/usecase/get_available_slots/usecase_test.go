package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	catalogRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/catalog"
	salonRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/salon"
	"github.com/gcare-app/GCare-BookingService/pkg/ptr"
	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// --- фейки ---

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeSalonRepo struct {
	salon *domain.Salon
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, salonRepo.ErrSalonNotFound
	}
	return f.salon, nil
}

type fakeServiceRepo struct {
	service *domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetBySalonWithFilter(_ context.Context, _ domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// --- фикстуры ---

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var testDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

func newTestUseCase(salon *domain.Salon, service *domain.Service, bookings []*domain.Booking) *UseCase {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeSalonRepo{salon: salon},
		&fakeServiceRepo{service: service},
		stubLogger{},
	)
	uc.timeProvider = &fixedClock{now: testNow}
	return uc
}

func shortDaySalon(mode domain.SalonMode) *domain.Salon {
	return &domain.Salon{
		ID:        1,
		Mode:      mode,
		OpenTime:  "09:00",
		CloseTime: "12:00",
	}
}

func haircut() *domain.Service {
	return &domain.Service{ID: 5, SalonID: 1, Name: "Haircut", DurationMinutes: 60, Price: 25}
}

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

// --- тесты ---

func TestSlotGridSlotMode(t *testing.T) {
	uc := newTestUseCase(shortDaySalon(domain.ModeSlot), haircut(), nil)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)

	// Шаг сетки равен длительности услуги, все слоты свободны
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, slotStarts(resp.Slots))
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, 60, slot.DurationMinutes)
	}
}

func TestSlotGridExcludesPartialSlot(t *testing.T) {
	salon := shortDaySalon(domain.ModeSlot)
	salon.CloseTime = "11:30"
	uc := newTestUseCase(salon, haircut(), nil)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)

	// Слот 11:00-12:00 не помещается до закрытия в 11:30
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, slotStarts(resp.Slots))
}

func TestSlotGridLongServiceNearMidnight(t *testing.T) {
	salon := shortDaySalon(domain.ModeSlot)
	salon.OpenTime = "16:00"
	salon.CloseTime = "23:00"
	service := haircut()
	service.DurationMinutes = 480
	uc := newTestUseCase(salon, service, nil)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)

	// 16:00 + 480 минут уходит за полночь: услуга не помещается ни в один слот
	assert.Empty(t, resp.Slots)
}

func TestSlotGridQueueModeIsEmpty(t *testing.T) {
	uc := newTestUseCase(shortDaySalon(domain.ModeQueue), haircut(), nil)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestSlotGridHybridOnlySlotBlocks(t *testing.T) {
	salon := &domain.Salon{
		ID:        1,
		Mode:      domain.ModeHybrid,
		OpenTime:  "09:00",
		CloseTime: "13:00",
		TimeBlocks: []domain.TimeBlock{
			{ID: 10, SalonID: 1, StartTime: "09:00", EndTime: "11:00", SubMode: domain.ModeSlot},
			{ID: 11, SalonID: 1, StartTime: "11:00", EndTime: "13:00", SubMode: domain.ModeQueue},
		},
	}
	uc := newTestUseCase(salon, haircut(), nil)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)

	// Queue-блок не даёт слотов
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, slotStarts(resp.Slots))
}

func TestSlotAvailabilityMarking(t *testing.T) {
	taken := []*domain.Booking{
		{
			SalonID:         1,
			Type:            domain.BookingTypeSlot,
			Status:          domain.StatusUpcoming,
			StartTime:       "10:00",
			DurationMinutes: 60,
		},
	}
	uc := newTestUseCase(shortDaySalon(domain.ModeSlot), haircut(), taken)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.True(t, resp.Slots[0].Available, "09:00 touches 10:00 booking and stays free")
	assert.False(t, resp.Slots[1].Available, "10:00 is taken")
	assert.True(t, resp.Slots[2].Available, "11:00 starts when the booking ends")
}

func TestSlotAvailabilityIgnoresCancelledAndQueue(t *testing.T) {
	bookings := []*domain.Booking{
		{SalonID: 1, Type: domain.BookingTypeSlot, Status: domain.StatusCancelled, StartTime: "10:00", DurationMinutes: 60},
		{SalonID: 1, Type: domain.BookingTypeQueue, Status: domain.StatusUpcoming, TicketNumber: ptr.Ptr(int64(1))},
	}
	uc := newTestUseCase(shortDaySalon(domain.ModeSlot), haircut(), bookings)

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s must be free", slot.StartTime)
	}
}

func TestSlotAvailabilityPerBarber(t *testing.T) {
	annID := ptr.Ptr(int64(7))
	bobID := ptr.Ptr(int64(8))
	bookings := []*domain.Booking{
		{SalonID: 1, Type: domain.BookingTypeSlot, Status: domain.StatusUpcoming, StartTime: "10:00", DurationMinutes: 60, BarberID: annID},
	}
	uc := newTestUseCase(shortDaySalon(domain.ModeSlot), haircut(), bookings)

	// Для другого мастера слот свободен
	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, BarberID: bobID, Date: testDate})
	require.NoError(t, err)
	assert.True(t, resp.Slots[1].Available)

	// Для того же мастера - занят
	resp, err = uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, BarberID: annID, Date: testDate})
	require.NoError(t, err)
	assert.False(t, resp.Slots[1].Available)

	// Запрос без мастера видит слот занятым: пересечение с любым бронированием
	resp, err = uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
	require.NoError(t, err)
	assert.False(t, resp.Slots[1].Available)
}

func TestSlotsForTodayDropStartedSlots(t *testing.T) {
	salon := shortDaySalon(domain.ModeSlot)
	salon.CloseTime = "15:00"
	uc := newTestUseCase(salon, haircut(), nil)

	// Сейчас 12:00 - слоты 09:00-11:00 уже начались
	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testNow})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"12:00", "13:00", "14:00"}, slotStarts(resp.Slots))
}

func TestSlotsErrors(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		uc := newTestUseCase(shortDaySalon(domain.ModeSlot), haircut(), nil)
		_, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testNow.AddDate(0, 0, -1)})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown salon", func(t *testing.T) {
		uc := newTestUseCase(nil, haircut(), nil)
		_, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("archived service", func(t *testing.T) {
		service := haircut()
		archivedAt := testNow
		service.ArchivedAt = &archivedAt
		uc := newTestUseCase(shortDaySalon(domain.ModeSlot), service, nil)
		_, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 5, Date: testDate})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := newTestUseCase(shortDaySalon(domain.ModeSlot), haircut(), nil)
		_, err := uc.Execute(context.Background(), &Request{SalonID: 0, ServiceID: 5, Date: testDate})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
