package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.BarberID != nil && *req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата визита не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotFits проверяет, что услуга целиком помещается до конца рабочих
// часов, а в hybrid-режиме - до конца slot-блока
func validateSlotFits(
	salon *domain.Salon,
	resolution domain.IntakeResolution,
	startTime types.TimeString,
	durationMinutes int,
) error {
	end, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: service does not fit into the day", ErrOutsideOperatingHours)
	}

	limit := salon.CloseTime
	if resolution.TimeBlockID != nil {
		for i := range salon.TimeBlocks {
			if salon.TimeBlocks[i].ID == *resolution.TimeBlockID {
				limit = salon.TimeBlocks[i].EndTime
				break
			}
		}
	}

	if end.IsAfter(limit) {
		return fmt.Errorf("%w: service ends at %s, after %s", ErrOutsideOperatingHours, end, limit)
	}

	return nil
}

// hasSlotConflict проверяет пересечение запрошенного интервала с активными
// slot-бронированиями дня. Интервалы полуоткрытые: бронирования, касающиеся
// границами, не конфликтуют.
//
// Бронирование без мастера занимает салон целиком и конфликтует с любым
// пересечением; бронирования с мастером конфликтуют между собой только
// при совпадении мастера.
func hasSlotConflict(
	startTime types.TimeString,
	durationMinutes int,
	barberID *int64,
	bookings []*domain.Booking,
) bool {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return true
	}

	for _, booking := range bookings {
		if booking.Type != domain.BookingTypeSlot || !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if !booking.StartTime.IsBefore(slotEnd) || !bookingEnd.IsAfter(startTime) {
			continue
		}

		// Интервалы пересекаются - проверяем по ресурсу
		if barberID == nil || booking.BarberID == nil {
			return true
		}
		if *booking.BarberID == *barberID {
			return true
		}
	}

	return false
}

// combineDateTime собирает момент времени из даты и времени суток.
// StartTime валидируется раньше, поэтому ошибка разбора здесь невозможна.
func combineDateTime(date time.Time, tod types.TimeString) time.Time {
	minutes, err := tod.Minutes()
	if err != nil {
		minutes = 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}
