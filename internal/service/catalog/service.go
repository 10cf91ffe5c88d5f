package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	catalogRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/catalog"
	"github.com/gcare-app/GCare-BookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг салона.
// Услуга, на которую уже ссылаются бронирования, неизменяема: правка создаёт
// новую версию, старая архивируется. История бронирований хранит снимок
// названия и цены, поэтому завершённые записи не меняются задним числом.
type Service struct {
	serviceRepo ServiceRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create добавляет новую услугу в каталог салона
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for salon=%d", req.Name, req.SalonID)

	if err := validateServiceFields(req.Name, req.DurationMinutes, req.Price, req.Category); err != nil {
		s.logger.Warn("Create: invalid service for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	service := &domain.Service{
		SalonID:         req.SalonID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        strings.TrimSpace(req.Category),
		Version:         1,
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		s.logger.Error("Create: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d for salon=%d", created.ID, req.SalonID)
	return models.FromDomainService(created), nil
}

// List возвращает активные услуги салона
func (s *Service) List(ctx context.Context, salonID int64) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.GetBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// Update изменяет услугу. Если на услугу ещё не ссылается ни одно бронирование,
// правка выполняется на месте. Иначе старая версия архивируется и создаётся
// новая с увеличенным номером версии - обе операции в одной транзакции.
func (s *Service) Update(ctx context.Context, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d for salon=%d", req.ServiceID, req.SalonID)

	if err := validateServiceFields(req.Name, req.DurationMinutes, req.Price, req.Category); err != nil {
		s.logger.Warn("Update: invalid service id=%d: %v", req.ServiceID, err)
		return nil, err
	}

	existing, err := s.getOwnedService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	if existing.IsArchived() {
		s.logger.Warn("Update: service id=%d is archived", req.ServiceID)
		return nil, ErrServiceArchived
	}

	referenced, err := s.bookingRepo.CountByService(ctx, existing.ID)
	if err != nil {
		s.logger.Error("Update: count bookings for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Update - count bookings: %v", ErrInternal, err)
	}

	updated := &domain.Service{
		SalonID:         existing.SalonID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        strings.TrimSpace(req.Category),
	}

	if referenced == 0 {
		// Ни одно бронирование не ссылается - правим на месте
		updated.ID = existing.ID
		updated.Version = existing.Version
		if err := s.serviceRepo.Update(ctx, updated); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Update: repository error for service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Update: service id=%d updated in place", updated.ID)
		return models.FromDomainService(updated), nil
	}

	// Услуга в истории бронирований - создаём новую версию
	var versioned *domain.Service
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var txErr error
		versioned, txErr = s.serviceRepo.CreateVersion(ctx, existing, updated)
		return txErr
	})
	if err != nil {
		s.logger.Error("Update: create version for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Update - create version: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service id=%d superseded by id=%d version=%d",
		existing.ID, versioned.ID, versioned.Version)
	return models.FromDomainService(versioned), nil
}

// Delete архивирует услугу. Физическое удаление не поддерживается,
// чтобы история бронирований оставалась консистентной.
func (s *Service) Delete(ctx context.Context, salonID, serviceID int64) error {
	s.logger.Info("Delete: archiving service id=%d for salon=%d", serviceID, salonID)

	if _, err := s.getOwnedService(ctx, salonID, serviceID); err != nil {
		return err
	}

	if err := s.serviceRepo.Archive(ctx, salonID, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: service id=%d archived", serviceID)
	return nil
}

// getOwnedService загружает услугу и проверяет принадлежность салону
func (s *Service) getOwnedService(ctx context.Context, salonID, serviceID int64) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("getOwnedService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("getOwnedService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: getOwnedService - repository error: %v", ErrInternal, err)
	}

	if service.SalonID != salonID {
		s.logger.Warn("getOwnedService: salon=%d does not own service id=%d", salonID, serviceID)
		return nil, ErrAccessDenied
	}

	return service, nil
}

func validateServiceFields(name string, durationMinutes int, price float64, category string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if len(category) > domain.MaxCategoryLength {
		return fmt.Errorf("%w: category must be at most %d characters", ErrInvalidInput, domain.MaxCategoryLength)
	}
	return nil
}
