package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	barberRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/barber"
	catalogRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/catalog"
	salonRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/salon"
)

// UseCase use case для создания бронирования.
// Режим приёма (slot или queue) определяется конфигурацией салона и запрошенным
// временем, клиент его не выбирает. Проверка занятости слота и выдача номера
// талона выполняются в сериализуемой транзакции, поэтому два одновременных
// запроса не получат один слот или один номер талона.
type UseCase struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	serviceRepo  ServiceRepository
	barberRepo   BarberRepository
	txManager    TransactionManager
	notifier     TransitionNotifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	barberRepo BarberRepository,
	txManager TransactionManager,
	notifier TransitionNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		serviceRepo:  serviceRepo,
		barberRepo:   barberRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: salon=%d, service=%d, date=%s, time=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}
	if salon.IsArchived() {
		uc.logger.Warn("CreateBooking: salon id=%d is archived", req.SalonID)
		return nil, ErrSalonNotFound
	}

	// 3. Получаем услугу и проверяем принадлежность салону
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID || service.IsArchived() {
		uc.logger.Warn("CreateBooking: service id=%d not available in salon=%d", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 4. Если выбран мастер - проверяем, что он работает в этом салоне
	if req.BarberID != nil {
		if err := uc.validateBarber(ctx, req.SalonID, *req.BarberID); err != nil {
			return nil, err
		}
	}

	// 5. Определяем режим приёма для запрошенного момента времени.
	// Результат зависит только от конфигурации салона и времени визита.
	requestedAt := combineDateTime(req.Date, req.StartTime)
	resolution, err := salon.ResolveIntakeMode(requestedAt)
	if err != nil {
		uc.logger.Warn("CreateBooking: intake resolution failed for salon=%d at %s: %v",
			req.SalonID, req.StartTime, err)
		return nil, ErrOutsideOperatingHours
	}

	// 6. Для slot-приёма услуга должна целиком помещаться до конца
	// рабочих часов (или slot-блока в hybrid-режиме)
	if resolution.Type == domain.BookingTypeSlot {
		if err := validateSlotFits(salon, resolution, req.StartTime, service.DurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot does not fit for salon=%d at %s: %v",
				req.SalonID, req.StartTime, err)
			return nil, err
		}
	}

	var result *domain.Booking

	// 7. Занимаем слот или выдаём номер талона в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking := &domain.Booking{
			SalonID:         req.SalonID,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			ServiceID:       service.ID,
			BarberID:        req.BarberID,
			BookingDate:     req.Date,
			DurationMinutes: service.DurationMinutes,
			TimeBlockID:     resolution.TimeBlockID,
			Type:            resolution.Type,
			Status:          domain.InitialBookingStatus(salon.AutoConfirm),
			// Денормализация: история хранит цену и название на момент создания
			ServiceName: service.Name,
			Price:       service.Price,
		}

		switch resolution.Type {
		case domain.BookingTypeSlot:
			// Загружаем активные бронирования дня с блокировкой (FOR UPDATE)
			filter := domain.SalonBookingsFilter{
				SalonID:   req.SalonID,
				StartDate: &req.Date,
				EndDate:   &req.Date,
			}
			existing, err := uc.bookingRepo.GetBySalonWithFilter(txCtx, filter)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			if hasSlotConflict(req.StartTime, service.DurationMinutes, req.BarberID, existing) {
				uc.logger.Warn("CreateBooking: slot %s is taken for salon=%d", req.StartTime, req.SalonID)
				return ErrSlotNotAvailable
			}

			booking.StartTime = req.StartTime

		case domain.BookingTypeQueue:
			ticket, err := uc.bookingRepo.NextTicketNumber(txCtx, req.SalonID, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get next ticket number: %v", err)
				return fmt.Errorf("%w: failed to get next ticket number: %v", ErrInternal, err)
			}
			booking.TicketNumber = &ticket
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Событие создания: from пустой, to - начальный статус
	uc.notifier.BookingTransition(ctx, req.SalonID, result.ID, "", string(result.Status))

	uc.logger.Info("CreateBooking: created booking id=%d type=%s status=%s",
		result.ID, result.Type, result.Status)

	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		ServiceID:       result.ServiceID,
		BarberID:        result.BarberID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		TicketNumber:    result.TicketNumber,
		DurationMinutes: result.DurationMinutes,
		Type:            string(result.Type),
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		Price:           result.Price,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// validateBarber проверяет, что мастер принадлежит салону и не удалён
func (uc *UseCase) validateBarber(ctx context.Context, salonID, barberID int64) error {
	barber, err := uc.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", barberID)
			return ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", barberID, err)
		return fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if barber.SalonID != salonID || barber.IsDeleted() {
		uc.logger.Warn("CreateBooking: barber id=%d not available in salon=%d", barberID, salonID)
		return ErrBarberNotFound
	}
	return nil
}
