package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// SalonMode represents the intake mode a salon operates in
type SalonMode string

const (
	ModeSlot   SalonMode = "slot"   // customers reserve fixed time intervals
	ModeQueue  SalonMode = "queue"  // walk-in customers receive sequential ticket numbers
	ModeHybrid SalonMode = "hybrid" // the day is partitioned into time blocks, each slot- or queue-governed
)

var (
	// ErrOutsideOperatingHours возвращается, когда запрошенное время вне рабочих часов
	// салона или (в hybrid-режиме) не покрыто ни одним time block.
	// Это ошибка целостности конфигурации - показывается владельцу, не ретраится.
	ErrOutsideOperatingHours = errors.New("domain: timestamp is outside operating hours")

	// ErrInvalidTimeBlocks возвращается, когда набор time blocks не образует
	// разбиение рабочих часов без дыр и пересечений
	ErrInvalidTimeBlocks = errors.New("domain: time blocks must partition operating hours")

	// ErrInvalidOperatingHours возвращается при некорректных рабочих часах
	ErrInvalidOperatingHours = errors.New("domain: invalid operating hours")
)

// TimeBlock is a contiguous sub-interval of a salon's operating hours
// with its own intake sub-mode. Owned exclusively by its Salon.
type TimeBlock struct {
	ID        int64
	SalonID   int64
	StartTime types.TimeString
	EndTime   types.TimeString
	SubMode   SalonMode // только ModeSlot или ModeQueue
}

// Salon represents a registered salon with its booking configuration.
// Salons are never hard-deleted - ArchivedAt marks soft archival.
type Salon struct {
	ID           int64
	OwnerName    string
	SalonName    string
	Email        string
	PasswordHash string
	Phone        string

	Mode        SalonMode
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	AutoConfirm bool
	TimeBlocks  []TimeBlock // упорядочены по StartTime, заполняются только при Mode = hybrid

	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsArchived returns true if the salon has been soft-archived
func (s *Salon) IsArchived() bool {
	return s.ArchivedAt != nil
}

// IntakeResolution is the result of resolving which intake mode governs
// a booking request at a given instant
type IntakeResolution struct {
	Type        BookingType
	TimeBlockID *int64 // заполняется только в hybrid-режиме
}

// ResolveIntakeMode определяет режим приёма заявки для момента времени t.
// Чистая функция конфигурации салона и времени: одинаковые входы всегда
// дают одинаковый результат.
func (s *Salon) ResolveIntakeMode(t time.Time) (IntakeResolution, error) {
	tod := types.NewTimeString(t)

	// Рабочие часы - полуоткрытый интервал [open, close)
	if tod.IsBefore(s.OpenTime) || !tod.IsBefore(s.CloseTime) {
		return IntakeResolution{}, fmt.Errorf("%w: %s is outside [%s, %s)",
			ErrOutsideOperatingHours, tod, s.OpenTime, s.CloseTime)
	}

	switch s.Mode {
	case ModeSlot:
		return IntakeResolution{Type: BookingTypeSlot}, nil
	case ModeQueue:
		return IntakeResolution{Type: BookingTypeQueue}, nil
	case ModeHybrid:
		for i := range s.TimeBlocks {
			block := &s.TimeBlocks[i]
			// Блок покрывает [start, end)
			if !tod.IsBefore(block.StartTime) && tod.IsBefore(block.EndTime) {
				resolvedType := BookingTypeSlot
				if block.SubMode == ModeQueue {
					resolvedType = BookingTypeQueue
				}
				return IntakeResolution{Type: resolvedType, TimeBlockID: &block.ID}, nil
			}
		}
		// Рабочие часы покрыты, но блока нет - дыра в конфигурации
		return IntakeResolution{}, fmt.Errorf("%w: no time block covers %s",
			ErrOutsideOperatingHours, tod)
	default:
		return IntakeResolution{}, fmt.Errorf("%w: unknown salon mode %q",
			ErrOutsideOperatingHours, s.Mode)
	}
}

// ValidateOperatingHours проверяет корректность рабочих часов
func (s *Salon) ValidateOperatingHours() error {
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidOperatingHours, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidOperatingHours, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: open %s must be before close %s",
			ErrInvalidOperatingHours, s.OpenTime, s.CloseTime)
	}
	return nil
}

// ValidateTimeBlocks проверяет инвариант hybrid-режима: блоки образуют разбиение
// [open, close) без дыр и пересечений, у каждого блока sub-mode slot или queue.
// Блоки должны быть упорядочены по StartTime.
// Проверяется при каждом сохранении настроек.
func (s *Salon) ValidateTimeBlocks() error {
	if s.Mode != ModeHybrid {
		if len(s.TimeBlocks) > 0 {
			return fmt.Errorf("%w: time blocks are only allowed in hybrid mode", ErrInvalidTimeBlocks)
		}
		return nil
	}

	if len(s.TimeBlocks) == 0 {
		return fmt.Errorf("%w: hybrid mode requires at least one time block", ErrInvalidTimeBlocks)
	}

	expectedStart := s.OpenTime
	for i := range s.TimeBlocks {
		block := &s.TimeBlocks[i]

		if block.SubMode != ModeSlot && block.SubMode != ModeQueue {
			return fmt.Errorf("%w: block %d has invalid sub-mode %q", ErrInvalidTimeBlocks, i, block.SubMode)
		}
		if !block.StartTime.IsBefore(block.EndTime) {
			return fmt.Errorf("%w: block %d start %s must be before end %s",
				ErrInvalidTimeBlocks, i, block.StartTime, block.EndTime)
		}
		if block.StartTime != expectedStart {
			return fmt.Errorf("%w: block %d starts at %s, expected %s",
				ErrInvalidTimeBlocks, i, block.StartTime, expectedStart)
		}
		expectedStart = block.EndTime
	}

	if expectedStart != s.CloseTime {
		return fmt.Errorf("%w: last block ends at %s, expected %s",
			ErrInvalidTimeBlocks, expectedStart, s.CloseTime)
	}

	return nil
}
