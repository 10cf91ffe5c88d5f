package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

func hybridSalon() *Salon {
	return &Salon{
		ID:        1,
		Mode:      ModeHybrid,
		OpenTime:  types.TimeString("09:00"),
		CloseTime: types.TimeString("21:00"),
		TimeBlocks: []TimeBlock{
			{ID: 10, SalonID: 1, StartTime: "09:00", EndTime: "14:00", SubMode: ModeSlot},
			{ID: 11, SalonID: 1, StartTime: "14:00", EndTime: "21:00", SubMode: ModeQueue},
		},
	}
}

func at(hour, min int) time.Time {
	return time.Date(2025, 10, 15, hour, min, 0, 0, time.UTC)
}

func TestResolveIntakeMode_SlotMode(t *testing.T) {
	salon := &Salon{Mode: ModeSlot, OpenTime: "09:00", CloseTime: "21:00"}

	res, err := salon.ResolveIntakeMode(at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, BookingTypeSlot, res.Type)
	assert.Nil(t, res.TimeBlockID)
}

func TestResolveIntakeMode_QueueMode(t *testing.T) {
	salon := &Salon{Mode: ModeQueue, OpenTime: "09:00", CloseTime: "21:00"}

	res, err := salon.ResolveIntakeMode(at(12, 30))
	require.NoError(t, err)
	assert.Equal(t, BookingTypeQueue, res.Type)
}

func TestResolveIntakeMode_HybridPicksCoveringBlock(t *testing.T) {
	salon := hybridSalon()

	morning, err := salon.ResolveIntakeMode(at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, BookingTypeSlot, morning.Type)
	require.NotNil(t, morning.TimeBlockID)
	assert.Equal(t, int64(10), *morning.TimeBlockID)

	evening, err := salon.ResolveIntakeMode(at(16, 0))
	require.NoError(t, err)
	assert.Equal(t, BookingTypeQueue, evening.Type)
	require.NotNil(t, evening.TimeBlockID)
	assert.Equal(t, int64(11), *evening.TimeBlockID)
}

func TestResolveIntakeMode_BlockBoundaryIsHalfOpen(t *testing.T) {
	salon := hybridSalon()

	// 14:00 принадлежит второму блоку: [09:00,14:00) и [14:00,21:00)
	res, err := salon.ResolveIntakeMode(at(14, 0))
	require.NoError(t, err)
	assert.Equal(t, BookingTypeQueue, res.Type)
}

func TestResolveIntakeMode_OutsideOperatingHours(t *testing.T) {
	salon := hybridSalon()

	_, err := salon.ResolveIntakeMode(at(8, 59))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	// Время закрытия не входит в рабочие часы: [open, close)
	_, err = salon.ResolveIntakeMode(at(21, 0))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestResolveIntakeMode_HybridGapSurfacesConfigError(t *testing.T) {
	salon := hybridSalon()
	// Искусственная дыра 14:00-15:00
	salon.TimeBlocks[1].StartTime = "15:00"

	_, err := salon.ResolveIntakeMode(at(14, 30))
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestResolveIntakeMode_IsDeterministic(t *testing.T) {
	salon := hybridSalon()
	ts := at(13, 59)

	first, err := salon.ResolveIntakeMode(ts)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		res, err := salon.ResolveIntakeMode(ts)
		require.NoError(t, err)
		assert.Equal(t, first, res)
	}
}

func TestValidateTimeBlocks_ValidPartition(t *testing.T) {
	salon := hybridSalon()
	assert.NoError(t, salon.ValidateTimeBlocks())
}

func TestValidateTimeBlocks_RejectsGap(t *testing.T) {
	salon := hybridSalon()
	salon.TimeBlocks[1].StartTime = "15:00"

	assert.ErrorIs(t, salon.ValidateTimeBlocks(), ErrInvalidTimeBlocks)
}

func TestValidateTimeBlocks_RejectsOverlap(t *testing.T) {
	salon := hybridSalon()
	salon.TimeBlocks[1].StartTime = "13:00"

	assert.ErrorIs(t, salon.ValidateTimeBlocks(), ErrInvalidTimeBlocks)
}

func TestValidateTimeBlocks_RejectsUncoveredTail(t *testing.T) {
	salon := hybridSalon()
	salon.TimeBlocks[1].EndTime = "20:00"

	assert.ErrorIs(t, salon.ValidateTimeBlocks(), ErrInvalidTimeBlocks)
}

func TestValidateTimeBlocks_RejectsHybridSubMode(t *testing.T) {
	salon := hybridSalon()
	salon.TimeBlocks[0].SubMode = ModeHybrid

	assert.ErrorIs(t, salon.ValidateTimeBlocks(), ErrInvalidTimeBlocks)
}

func TestValidateTimeBlocks_NonHybridMustBeEmpty(t *testing.T) {
	salon := hybridSalon()
	salon.Mode = ModeSlot

	assert.ErrorIs(t, salon.ValidateTimeBlocks(), ErrInvalidTimeBlocks)

	salon.TimeBlocks = nil
	assert.NoError(t, salon.ValidateTimeBlocks())
}

func TestValidateTimeBlocks_HybridRequiresBlocks(t *testing.T) {
	salon := hybridSalon()
	salon.TimeBlocks = nil

	assert.ErrorIs(t, salon.ValidateTimeBlocks(), ErrInvalidTimeBlocks)
}

func TestValidateOperatingHours(t *testing.T) {
	salon := &Salon{OpenTime: "09:00", CloseTime: "21:00"}
	assert.NoError(t, salon.ValidateOperatingHours())

	salon.CloseTime = "09:00"
	assert.ErrorIs(t, salon.ValidateOperatingHours(), ErrInvalidOperatingHours)

	salon.CloseTime = "25:00"
	assert.ErrorIs(t, salon.ValidateOperatingHours(), ErrInvalidOperatingHours)
}
