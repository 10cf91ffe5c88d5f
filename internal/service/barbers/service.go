package barbers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	barberRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/barber"
	"github.com/gcare-app/GCare-BookingService/internal/service/barbers/models"
)

// Service сервис управления мастерами салона
type Service struct {
	barberRepo BarberRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(barberRepo BarberRepository, logger Logger) *Service {
	return &Service{
		barberRepo: barberRepo,
		logger:     logger,
	}
}

// Create добавляет нового мастера. Новый мастер сразу доступен для назначения.
func (s *Service) Create(ctx context.Context, req *models.CreateBarberRequest) (*models.BarberResponse, error) {
	s.logger.Info("Create: creating barber %q for salon=%d", req.Name, req.SalonID)

	if err := validateCreateBarber(req); err != nil {
		s.logger.Warn("Create: invalid barber for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	barber := &domain.Barber{
		SalonID:     req.SalonID,
		Name:        strings.TrimSpace(req.Name),
		Specialties: req.Specialties,
		Experience:  strings.TrimSpace(req.Experience),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Status:      domain.BarberActive,
	}

	created, err := s.barberRepo.Create(ctx, barber)
	if err != nil {
		s.logger.Error("Create: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created barber id=%d for salon=%d", created.ID, req.SalonID)
	return models.FromDomainBarber(created), nil
}

// List возвращает действующих мастеров салона
func (s *Service) List(ctx context.Context, salonID int64) (*models.BarberListResponse, error) {
	barbers, err := s.barberRepo.GetBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBarberList(barbers), nil
}

// Delete мягко удаляет мастера. Прошлые бронирования сохраняют ссылку на него.
func (s *Service) Delete(ctx context.Context, salonID, barberID int64) error {
	s.logger.Info("Delete: removing barber id=%d from salon=%d", barberID, salonID)

	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("Delete: barber id=%d not found", barberID)
			return ErrBarberNotFound
		}
		s.logger.Error("Delete: repository error for barber id=%d: %v", barberID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if barber.SalonID != salonID {
		s.logger.Warn("Delete: salon=%d does not own barber id=%d", salonID, barberID)
		return ErrAccessDenied
	}

	if err := s.barberRepo.SoftDelete(ctx, salonID, barberID); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return ErrBarberNotFound
		}
		s.logger.Error("Delete: repository error for barber id=%d: %v", barberID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: barber id=%d removed from salon=%d", barberID, salonID)
	return nil
}

func validateCreateBarber(req *models.CreateBarberRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(req.Specialties) == 0 {
		return fmt.Errorf("%w: at least one specialty is required", ErrInvalidInput)
	}
	if len(req.Specialties) > domain.MaxSpecialties {
		return fmt.Errorf("%w: at most %d specialties are allowed", ErrInvalidInput, domain.MaxSpecialties)
	}
	for _, specialty := range req.Specialties {
		if strings.TrimSpace(specialty) == "" {
			return fmt.Errorf("%w: specialties must not be empty", ErrInvalidInput)
		}
	}
	return nil
}
