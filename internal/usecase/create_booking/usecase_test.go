package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	barberRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/barber"
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

type fakeBarberRepo struct {
	barber *domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	if f.barber == nil || f.barber.ID != id {
		return nil, barberRepo.ErrBarberNotFound
	}
	return f.barber, nil
}

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	stored := *booking
	stored.ID = int64(100 + len(f.created))
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	f.existing = append(f.existing, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(f.existing))
	for _, b := range f.existing {
		if b.SalonID == filter.SalonID {
			result = append(result, b)
		}
	}
	return result, nil
}

// NextTicketNumber повторяет семантику хранилища: MAX по выданным талонам
// дня плюс один, независимо от статуса бронирования
func (f *fakeBookingRepo) NextTicketNumber(_ context.Context, salonID int64, _ time.Time) (int64, error) {
	var max int64
	for _, b := range f.existing {
		if b.SalonID != salonID || b.Type != domain.BookingTypeQueue {
			continue
		}
		if b.TicketNumber != nil && *b.TicketNumber > max {
			max = *b.TicketNumber
		}
	}
	return max + 1, nil
}

type recordNotifier struct {
	mu   sync.Mutex
	from []string
	to   []string
}

func (n *recordNotifier) BookingTransition(_ context.Context, _, _ int64, from, to string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.from = append(n.from, from)
	n.to = append(n.to, to)
}

// lockingTxManager сериализует транзакции мьютексом - модель поведения
// сериализуемых транзакций для конкурентных тестов
type lockingTxManager struct {
	mu sync.Mutex
}

func (m *lockingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

// --- фикстуры ---

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func slotSalon() *domain.Salon {
	return &domain.Salon{
		ID:        1,
		SalonName: "Main Street Cuts",
		Mode:      domain.ModeSlot,
		OpenTime:  "09:00",
		CloseTime: "21:00",
	}
}

func hybridSalon() *domain.Salon {
	return &domain.Salon{
		ID:        1,
		SalonName: "Main Street Cuts",
		Mode:      domain.ModeHybrid,
		OpenTime:  "09:00",
		CloseTime: "21:00",
		TimeBlocks: []domain.TimeBlock{
			{ID: 10, SalonID: 1, StartTime: "09:00", EndTime: "14:00", SubMode: domain.ModeSlot},
			{ID: 11, SalonID: 1, StartTime: "14:00", EndTime: "21:00", SubMode: domain.ModeQueue},
		},
	}
}

func haircut() *domain.Service {
	return &domain.Service{
		ID:              5,
		SalonID:         1,
		Name:            "Haircut",
		DurationMinutes: 30,
		Price:           25.0,
		Version:         1,
	}
}

type testEnv struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	notifier *recordNotifier
}

func newTestEnv(salon *domain.Salon, service *domain.Service, barber *domain.Barber) *testEnv {
	bookings := &fakeBookingRepo{}
	notifier := &recordNotifier{}
	uc := NewUseCase(
		bookings,
		&fakeSalonRepo{salon: salon},
		&fakeServiceRepo{service: service},
		&fakeBarberRepo{barber: barber},
		fakeTxManager{},
		notifier,
		stubLogger{},
	)
	uc.timeProvider = &fixedClock{now: testNow}
	return &testEnv{uc: uc, bookings: bookings, notifier: notifier}
}

func slotRequest(start types.TimeString) *Request {
	return &Request{
		SalonID:       1,
		CustomerName:  "Alice",
		CustomerPhone: "+15550001",
		ServiceID:     5,
		Date:          time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     start,
	}
}

// --- тесты ---

func TestCreateBookingSlotMode(t *testing.T) {
	env := newTestEnv(slotSalon(), haircut(), nil)

	resp, err := env.uc.Execute(context.Background(), slotRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, "slot", resp.Type)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Nil(t, resp.TicketNumber)
	assert.Equal(t, 30, resp.DurationMinutes)

	// Без auto-confirm бронирование ждёт подтверждения
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Снимок услуги на момент создания
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 25.0, resp.Price)

	// Событие создания: from пустой
	require.Len(t, env.notifier.to, 1)
	assert.Equal(t, "", env.notifier.from[0])
	assert.Equal(t, string(domain.StatusPending), env.notifier.to[0])
}

func TestCreateBookingAutoConfirm(t *testing.T) {
	salon := slotSalon()
	salon.AutoConfirm = true
	env := newTestEnv(salon, haircut(), nil)

	resp, err := env.uc.Execute(context.Background(), slotRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusUpcoming), resp.Status)
}

func TestCreateBookingSlotConflicts(t *testing.T) {
	tests := []struct {
		name     string
		existing types.TimeString
		request  types.TimeString
		wantErr  bool
	}{
		{"same start", "10:00", "10:00", true},
		{"overlap from inside", "10:00", "10:15", true},
		{"overlap from before", "10:15", "10:00", true},
		{"touching end-to-start is free", "10:00", "10:30", false},
		{"touching start-to-end is free", "10:30", "10:00", false},
		{"disjoint", "10:00", "12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(slotSalon(), haircut(), nil)
			_, err := env.uc.Execute(context.Background(), slotRequest(tt.existing))
			require.NoError(t, err)

			_, err = env.uc.Execute(context.Background(), slotRequest(tt.request))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSlotNotAvailable)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingBarberResourceRules(t *testing.T) {
	barberA := &domain.Barber{ID: 7, SalonID: 1, Name: "Ann", Status: domain.BarberActive}
	barberB := &domain.Barber{ID: 8, SalonID: 1, Name: "Bob", Status: domain.BarberActive}

	t.Run("same barber conflicts", func(t *testing.T) {
		env := newTestEnv(slotSalon(), haircut(), barberA)

		first := slotRequest("10:00")
		first.BarberID = ptr.Ptr(int64(7))
		_, err := env.uc.Execute(context.Background(), first)
		require.NoError(t, err)

		second := slotRequest("10:15")
		second.BarberID = ptr.Ptr(int64(7))
		_, err = env.uc.Execute(context.Background(), second)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("different barbers do not conflict", func(t *testing.T) {
		env := newTestEnv(slotSalon(), haircut(), barberA)

		first := slotRequest("10:00")
		first.BarberID = ptr.Ptr(int64(7))
		_, err := env.uc.Execute(context.Background(), first)
		require.NoError(t, err)

		env.uc.barberRepo = &fakeBarberRepo{barber: barberB}
		second := slotRequest("10:15")
		second.BarberID = ptr.Ptr(int64(8))
		_, err = env.uc.Execute(context.Background(), second)
		assert.NoError(t, err)
	})

	t.Run("booking without barber occupies the whole salon", func(t *testing.T) {
		env := newTestEnv(slotSalon(), haircut(), barberA)

		first := slotRequest("10:00")
		_, err := env.uc.Execute(context.Background(), first)
		require.NoError(t, err)

		second := slotRequest("10:15")
		second.BarberID = ptr.Ptr(int64(7))
		_, err = env.uc.Execute(context.Background(), second)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

func TestCreateBookingHybridMode(t *testing.T) {
	env := newTestEnv(hybridSalon(), haircut(), nil)

	// Утро - slot-блок
	morning, err := env.uc.Execute(context.Background(), slotRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, "slot", morning.Type)
	assert.Equal(t, types.TimeString("10:00"), morning.StartTime)
	assert.Nil(t, morning.TicketNumber)

	// Вечер - queue-блок, выдаются последовательные талоны
	first, err := env.uc.Execute(context.Background(), slotRequest("16:00"))
	require.NoError(t, err)
	assert.Equal(t, "queue", first.Type)
	require.NotNil(t, first.TicketNumber)
	assert.Equal(t, int64(1), *first.TicketNumber)
	assert.Equal(t, types.TimeString(""), first.StartTime)

	second, err := env.uc.Execute(context.Background(), slotRequest("16:00"))
	require.NoError(t, err)
	require.NotNil(t, second.TicketNumber)
	assert.Equal(t, int64(2), *second.TicketNumber)

	// Queue-заявки не занимают слоты
	afterQueue, err := env.uc.Execute(context.Background(), slotRequest("10:30"))
	require.NoError(t, err)
	assert.Equal(t, "slot", afterQueue.Type)
}

func TestCreateBookingConcurrentQueueTickets(t *testing.T) {
	// Конкурентные запросы в queue-блок: сериализуемая транзакция гарантирует
	// номера талонов ровно 1..N без дублей
	env := newTestEnv(hybridSalon(), haircut(), nil)
	env.uc.txManager = &lockingTxManager{}

	const n = 16
	tickets := make(chan int64, n)
	failures := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := env.uc.Execute(context.Background(), slotRequest("16:00"))
			if err != nil {
				failures <- err
				return
			}
			if resp.TicketNumber == nil {
				failures <- fmt.Errorf("booking %d has no ticket number", resp.ID)
				return
			}
			tickets <- *resp.TicketNumber
		}()
	}
	wg.Wait()
	close(tickets)
	close(failures)

	for err := range failures {
		require.NoError(t, err)
	}

	seen := make(map[int64]bool, n)
	for ticket := range tickets {
		assert.False(t, seen[ticket], "ticket %d issued twice", ticket)
		seen[ticket] = true
	}
	for ticket := int64(1); ticket <= n; ticket++ {
		assert.True(t, seen[ticket], "ticket %d was never issued", ticket)
	}
}

func TestCreateBookingValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{"missing customer name", func(r *Request) { r.CustomerName = "  " }, ErrInvalidInput},
		{"missing phone", func(r *Request) { r.CustomerPhone = "" }, ErrInvalidInput},
		{"bad time format", func(r *Request) { r.StartTime = "25:99" }, ErrInvalidInput},
		{"past date", func(r *Request) { r.Date = testNow.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"before opening", func(r *Request) { r.StartTime = "08:00" }, ErrOutsideOperatingHours},
		{"at closing", func(r *Request) { r.StartTime = "21:00" }, ErrOutsideOperatingHours},
		{"does not fit before close", func(r *Request) { r.StartTime = "20:45" }, ErrOutsideOperatingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(slotSalon(), haircut(), nil)
			req := slotRequest("10:00")
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBookingLongServicePastMidnight(t *testing.T) {
	// 16:30 + 480 минут уходит за полночь - интервал не помещается в рабочие часы
	service := haircut()
	service.DurationMinutes = 480
	env := newTestEnv(slotSalon(), service, nil)

	_, err := env.uc.Execute(context.Background(), slotRequest("16:30"))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestCreateBookingSlotMustFitInsideBlock(t *testing.T) {
	// Услуга 30 минут не помещается в остаток slot-блока [09:00, 14:00)
	env := newTestEnv(hybridSalon(), haircut(), nil)

	_, err := env.uc.Execute(context.Background(), slotRequest("13:45"))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestCreateBookingLookupErrors(t *testing.T) {
	t.Run("unknown salon", func(t *testing.T) {
		env := newTestEnv(nil, haircut(), nil)
		_, err := env.uc.Execute(context.Background(), slotRequest("10:00"))
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("archived salon", func(t *testing.T) {
		salon := slotSalon()
		archivedAt := testNow
		salon.ArchivedAt = &archivedAt
		env := newTestEnv(salon, haircut(), nil)

		_, err := env.uc.Execute(context.Background(), slotRequest("10:00"))
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("service from another salon", func(t *testing.T) {
		service := haircut()
		service.SalonID = 99
		env := newTestEnv(slotSalon(), service, nil)

		_, err := env.uc.Execute(context.Background(), slotRequest("10:00"))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("deleted barber", func(t *testing.T) {
		deletedAt := testNow
		barber := &domain.Barber{ID: 7, SalonID: 1, Name: "Ann", DeletedAt: &deletedAt}
		env := newTestEnv(slotSalon(), haircut(), barber)

		req := slotRequest("10:00")
		req.BarberID = ptr.Ptr(int64(7))
		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})
}
