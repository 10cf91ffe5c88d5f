package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	barberRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/barber"
	bookingRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/booking"
	"github.com/gcare-app/GCare-BookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований на стороне салона.
// Переходы статусов проверяются по таблице domain.ValidateBookingTransition:
// недопустимый переход отклоняется без записи в БД.
type Service struct {
	bookingRepo BookingRepository
	barberRepo  BarberRepository
	txManager   TransactionManager
	notifier    TransitionNotifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	barberRepo BarberRepository,
	txManager TransactionManager,
	notifier TransitionNotifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		barberRepo:  barberRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetSalonBookings получает бронирования салона с гибкой фильтрацией:
// по мастеру, периоду, статусу, типу приёма. Отменённые бронирования
// не включаются, если не запрошены явно.
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSalonBookings: fetching bookings for salon=%d", req.SalonID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings), nil
}

// Accept подтверждает бронирование: pending -> upcoming.
// Для салонов с auto-confirm бронирования создаются сразу в upcoming
// и этот шаг не нужен.
func (s *Service) Accept(ctx context.Context, salonID, bookingID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, salonID, bookingID, domain.StatusUpcoming, nil)
}

// Start начинает обслуживание: upcoming -> in-progress.
// Если бронированию назначен мастер, он атомарно переводится в busy;
// занятый мастер не может начать второе обслуживание одновременно.
func (s *Service) Start(ctx context.Context, salonID, bookingID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, salonID, bookingID, domain.StatusInProgress, func(ctx context.Context, booking *domain.Booking) error {
		if booking.BarberID == nil {
			return nil
		}
		if err := s.barberRepo.SetStatusIf(ctx, *booking.BarberID, domain.BarberActive, domain.BarberBusy); err != nil {
			if errors.Is(err, barberRepo.ErrStatusConflict) {
				s.logger.Warn("Start: barber=%d is not available for booking=%d", *booking.BarberID, bookingID)
				return ErrBarberUnavailable
			}
			return err
		}
		return nil
	})
}

// Complete завершает обслуживание: in-progress -> completed.
// Назначенный мастер возвращается из busy в active.
func (s *Service) Complete(ctx context.Context, salonID, bookingID int64) (*models.BookingResponse, error) {
	return s.transition(ctx, salonID, bookingID, domain.StatusCompleted, func(ctx context.Context, booking *domain.Booking) error {
		if booking.BarberID == nil {
			return nil
		}
		if err := s.barberRepo.SetStatusIf(ctx, *booking.BarberID, domain.BarberBusy, domain.BarberActive); err != nil {
			// Владелец мог вручную сменить статус мастера - завершение не блокируем
			if errors.Is(err, barberRepo.ErrStatusConflict) || errors.Is(err, barberRepo.ErrBarberNotFound) {
				s.logger.Warn("Complete: barber=%d was not busy for booking=%d", *booking.BarberID, bookingID)
				return nil
			}
			return err
		}
		return nil
	})
}

// Cancel отменяет бронирование с указанием причины.
// Отмена возможна только из pending и upcoming: начатое обслуживание
// доводится до completed.
func (s *Service) Cancel(ctx context.Context, salonID, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d for salon=%d", bookingID, salonID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getOwnedBooking(ctx, salonID, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Статус успел измениться параллельным переходом
			s.logger.Warn("Cancel: booking id=%d status changed concurrently", bookingID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.notifier.BookingTransition(ctx, salonID, bookingID, string(booking.Status), string(domain.StatusCancelled))
	s.logger.Info("Cancel: booking id=%d cancelled", bookingID)

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - reload booking: %v", ErrInternal, err)
	}
	return models.FromDomainBooking(updated), nil
}

// transition выполняет переход статуса с опциональным побочным действием
// (переключение занятости мастера) в одной транзакции
func (s *Service) transition(
	ctx context.Context,
	salonID, bookingID int64,
	to domain.BookingStatus,
	sideEffect func(ctx context.Context, booking *domain.Booking) error,
) (*models.BookingResponse, error) {
	s.logger.Info("transition: booking id=%d for salon=%d -> %s", bookingID, salonID, to)

	booking, err := s.getOwnedBooking(ctx, salonID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateBookingTransition(booking.Status, to); err != nil {
		s.logger.Warn("transition: booking id=%d invalid transition %s -> %s", bookingID, booking.Status, to)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if sideEffect != nil {
			if err := sideEffect(ctx, booking); err != nil {
				return err
			}
		}
		// Условная запись: переход проходит, только если статус
		// не изменился между чтением и записью
		return s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, to)
	})
	if err != nil {
		if errors.Is(err, ErrBarberUnavailable) {
			return nil, ErrBarberUnavailable
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("transition: booking id=%d status changed concurrently", bookingID)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
		}
		s.logger.Error("transition: booking id=%d -> %s failed: %v", bookingID, to, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	s.notifier.BookingTransition(ctx, salonID, bookingID, string(booking.Status), string(to))
	s.logger.Info("transition: booking id=%d moved %s -> %s", bookingID, booking.Status, to)

	booking.Status = to
	return models.FromDomainBooking(booking), nil
}

// getOwnedBooking загружает бронирование и проверяет принадлежность салону
func (s *Service) getOwnedBooking(ctx context.Context, salonID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getOwnedBooking: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getOwnedBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: getOwnedBooking - repository error: %v", ErrInternal, err)
	}

	if booking.SalonID != salonID {
		s.logger.Warn("getOwnedBooking: salon=%d does not own booking id=%d", salonID, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
