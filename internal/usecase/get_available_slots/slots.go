package get_available_slots

import (
	"time"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// slotRange один slot-интервал дня: весь день в slot-режиме
// либо отдельный slot-блок в hybrid-режиме
type slotRange struct {
	start types.TimeString
	end   types.TimeString
}

// slotRangesForDay возвращает slot-интервалы дня согласно режиму салона.
// В queue-режиме интервалов нет, queue-блоки hybrid-режима пропускаются.
func slotRangesForDay(salon *domain.Salon) []slotRange {
	switch salon.Mode {
	case domain.ModeSlot:
		return []slotRange{{start: salon.OpenTime, end: salon.CloseTime}}
	case domain.ModeHybrid:
		ranges := make([]slotRange, 0, len(salon.TimeBlocks))
		for _, block := range salon.TimeBlocks {
			if block.SubMode == domain.ModeSlot {
				ranges = append(ranges, slotRange{start: block.StartTime, end: block.EndTime})
			}
		}
		return ranges
	default:
		return nil
	}
}

// generateTimeSlots генерирует сетку слотов по slot-интервалам дня
// с шагом, равным длительности услуги. Слот попадает в сетку, только если
// услуга целиком помещается до конца интервала. Для сегодняшней даты
// прошедшие слоты отбрасываются.
func generateTimeSlots(
	salon *domain.Salon,
	durationMinutes int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	allSlots := make([]types.TimeString, 0)

	for _, r := range slotRangesForDay(salon) {
		currentSlot := r.start
		for currentSlot.IsBefore(r.end) {
			slotEnd, err := currentSlot.AddMinutes(durationMinutes)
			if err != nil {
				break
			}
			if slotEnd.IsAfter(r.end) {
				break
			}

			allSlots = append(allSlots, currentSlot)
			currentSlot = slotEnd
		}
	}

	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Сегодня - оставляем только слоты, которые ещё не начались
	currentTime := types.NewTimeString(now)
	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(currentTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// markAvailability помечает каждый слот занятым или свободным.
// Правила пересечения те же, что при создании бронирования: интервалы
// полуоткрытые, бронирование без мастера занимает салон целиком, бронирования
// с мастером конфликтуют только при совпадении мастера.
func markAvailability(
	slots []types.TimeString,
	durationMinutes int,
	barberID *int64,
	bookings []*domain.Booking,
) []Slot {
	result := make([]Slot, len(slots))

	for i, slotStart := range slots {
		result[i] = Slot{
			StartTime:       slotStart,
			DurationMinutes: durationMinutes,
			Available:       !isSlotTaken(slotStart, durationMinutes, barberID, bookings),
		}
	}

	return result
}

// isSlotTaken проверяет пересечение слота с активными slot-бронированиями
func isSlotTaken(
	slotStart types.TimeString,
	durationMinutes int,
	barberID *int64,
	bookings []*domain.Booking,
) bool {
	slotEnd, err := slotStart.AddMinutes(durationMinutes)
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

		// Строгие неравенства: граничащие интервалы не пересекаются
		if !booking.StartTime.IsBefore(slotEnd) || !bookingEnd.IsAfter(slotStart) {
			continue
		}

		if barberID == nil || booking.BarberID == nil {
			return true
		}
		if *booking.BarberID == *barberID {
			return true
		}
	}

	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
