package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	salonRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/salon"
	"github.com/gcare-app/GCare-BookingService/internal/service/settings/models"
)

// Service сервис настроек приёма салона
type Service struct {
	salonRepo SalonRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(salonRepo SalonRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		salonRepo: salonRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Get возвращает текущие настройки приёма салона
func (s *Service) Get(ctx context.Context, salonID int64) (*models.SettingsResponse, error) {
	salon, err := s.getSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSalon(salon), nil
}

// Update заменяет настройки приёма салона: режим, рабочие часы, auto-confirm
// и весь набор time blocks. Конфигурация валидируется целиком перед сохранением,
// замена выполняется в одной транзакции. Существующие бронирования сохраняют
// свой тип - смена режима влияет только на новые заявки.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for salon=%d mode=%s", req.SalonID, req.Mode)

	salon, err := s.getSalon(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}

	if err := validateMode(req.Mode); err != nil {
		s.logger.Warn("Update: invalid mode=%q for salon=%d", req.Mode, req.SalonID)
		return nil, err
	}

	req.ApplyToDomain(salon)

	// Блоки сравниваются с ожидаемым началом по порядку, поэтому сортируем заранее
	sort.Slice(salon.TimeBlocks, func(i, j int) bool {
		return salon.TimeBlocks[i].StartTime.IsBefore(salon.TimeBlocks[j].StartTime)
	})

	if err := salon.ValidateOperatingHours(); err != nil {
		s.logger.Warn("Update: invalid operating hours for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := salon.ValidateTimeBlocks(); err != nil {
		s.logger.Warn("Update: invalid time blocks for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.salonRepo.UpdateSettings(ctx, salon)
	})
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Update: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved for salon=%d mode=%s blocks=%d",
		req.SalonID, salon.Mode, len(salon.TimeBlocks))
	return models.FromDomainSalon(salon), nil
}

// Archive мягко архивирует салон: вход блокируется, история сохраняется
func (s *Service) Archive(ctx context.Context, salonID int64) error {
	s.logger.Info("Archive: archiving salon=%d", salonID)

	if err := s.salonRepo.Archive(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return ErrSalonNotFound
		}
		s.logger.Error("Archive: repository error for salon=%d: %v", salonID, err)
		return fmt.Errorf("%w: Archive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Archive: salon=%d archived", salonID)
	return nil
}

func (s *Service) getSalon(ctx context.Context, salonID int64) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("getSalon: salon=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("getSalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: getSalon - repository error: %v", ErrInternal, err)
	}
	return salon, nil
}

func validateMode(mode string) error {
	switch domain.SalonMode(mode) {
	case domain.ModeSlot, domain.ModeQueue, domain.ModeHybrid:
		return nil
	default:
		return fmt.Errorf("%w: mode must be slot, queue or hybrid", ErrInvalidInput)
	}
}
