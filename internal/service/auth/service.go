package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	partnerRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/partner"
	salonRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/salon"
	"github.com/gcare-app/GCare-BookingService/internal/service/auth/models"
	"github.com/gcare-app/GCare-BookingService/pkg/authtoken"
	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// bcryptCost стоимость хеширования паролей
const bcryptCost = 12

const minPasswordLength = 8

// TokenIssuer интерфейс выпуска токенов доступа
type TokenIssuer interface {
	Issue(subjectID int64, role string) (string, error)
}

// Service сервис регистрации и аутентификации салонов и партнёров
type Service struct {
	salonRepo   SalonRepository
	partnerRepo PartnerRepository
	tokens      TokenIssuer
	logger      Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	salonRepo SalonRepository,
	partnerRepo PartnerRepository,
	tokens TokenIssuer,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:   salonRepo,
		partnerRepo: partnerRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// RegisterSalon регистрирует новый салон.
// Новый салон получает slot-режим и рабочие часы по умолчанию 09:00-21:00.
func (s *Service) RegisterSalon(ctx context.Context, req *models.RegisterSalonRequest) (*models.SalonAuthResponse, error) {
	if err := validateRegisterSalon(req); err != nil {
		s.logger.Warn("RegisterSalon: invalid request for email=%s: %v", req.Email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error("RegisterSalon: hash password: %v", err)
		return nil, fmt.Errorf("%w: RegisterSalon - hash password: %v", ErrInternal, err)
	}

	salon := &domain.Salon{
		OwnerName:    strings.TrimSpace(req.OwnerName),
		SalonName:    strings.TrimSpace(req.SalonName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
		Mode:         domain.ModeSlot,
		OpenTime:     types.TimeString(domain.DefaultOpenTime),
		CloseTime:    types.TimeString(domain.DefaultCloseTime),
		AutoConfirm:  false,
	}

	created, err := s.salonRepo.Create(ctx, salon)
	if err != nil {
		if errors.Is(err, salonRepo.ErrEmailTaken) {
			s.logger.Warn("RegisterSalon: email=%s already taken", salon.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("RegisterSalon: repository error: %v", err)
		return nil, fmt.Errorf("%w: RegisterSalon - repository error: %v", ErrInternal, err)
	}

	token, err := s.tokens.Issue(created.ID, authtoken.RoleSalon)
	if err != nil {
		s.logger.Error("RegisterSalon: issue token for salon=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: RegisterSalon - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("RegisterSalon: registered salon id=%d email=%s", created.ID, created.Email)
	return &models.SalonAuthResponse{
		Token: token,
		Salon: models.FromDomainSalon(created),
	}, nil
}

// LoginSalon аутентифицирует салон по email и паролю
func (s *Service) LoginSalon(ctx context.Context, req *models.LoginRequest) (*models.SalonAuthResponse, error) {
	email := normalizeEmail(req.Email)

	salon, err := s.salonRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("LoginSalon: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("LoginSalon: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: LoginSalon - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(salon.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("LoginSalon: wrong password for salon=%d", salon.ID)
		return nil, ErrInvalidCredentials
	}

	if salon.IsArchived() {
		s.logger.Warn("LoginSalon: salon=%d is archived", salon.ID)
		return nil, ErrSalonArchived
	}

	token, err := s.tokens.Issue(salon.ID, authtoken.RoleSalon)
	if err != nil {
		s.logger.Error("LoginSalon: issue token for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: LoginSalon - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("LoginSalon: salon id=%d logged in", salon.ID)
	return &models.SalonAuthResponse{
		Token: token,
		Salon: models.FromDomainSalon(salon),
	}, nil
}

// RegisterPartner регистрирует нового партнёра выездного сервиса
func (s *Service) RegisterPartner(ctx context.Context, req *models.RegisterPartnerRequest) (*models.PartnerAuthResponse, error) {
	if err := validateRegisterPartner(req); err != nil {
		s.logger.Warn("RegisterPartner: invalid request for email=%s: %v", req.Email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error("RegisterPartner: hash password: %v", err)
		return nil, fmt.Errorf("%w: RegisterPartner - hash password: %v", ErrInternal, err)
	}

	partner := &domain.Partner{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
	}

	created, err := s.partnerRepo.Create(ctx, partner)
	if err != nil {
		if errors.Is(err, partnerRepo.ErrEmailTaken) {
			s.logger.Warn("RegisterPartner: email=%s already taken", partner.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("RegisterPartner: repository error: %v", err)
		return nil, fmt.Errorf("%w: RegisterPartner - repository error: %v", ErrInternal, err)
	}

	token, err := s.tokens.Issue(created.ID, authtoken.RolePartner)
	if err != nil {
		s.logger.Error("RegisterPartner: issue token for partner=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: RegisterPartner - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("RegisterPartner: registered partner id=%d email=%s", created.ID, created.Email)
	return &models.PartnerAuthResponse{
		Token:   token,
		Partner: models.FromDomainPartner(created),
	}, nil
}

// LoginPartner аутентифицирует партнёра по email и паролю
func (s *Service) LoginPartner(ctx context.Context, req *models.LoginRequest) (*models.PartnerAuthResponse, error) {
	email := normalizeEmail(req.Email)

	partner, err := s.partnerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
			s.logger.Warn("LoginPartner: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("LoginPartner: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: LoginPartner - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(partner.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("LoginPartner: wrong password for partner=%d", partner.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(partner.ID, authtoken.RolePartner)
	if err != nil {
		s.logger.Error("LoginPartner: issue token for partner=%d: %v", partner.ID, err)
		return nil, fmt.Errorf("%w: LoginPartner - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("LoginPartner: partner id=%d logged in", partner.ID)
	return &models.PartnerAuthResponse{
		Token:   token,
		Partner: models.FromDomainPartner(partner),
	}, nil
}

// Валидация

func validateRegisterSalon(req *models.RegisterSalonRequest) error {
	if strings.TrimSpace(req.OwnerName) == "" {
		return fmt.Errorf("%w: ownerName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.SalonName) == "" {
		return fmt.Errorf("%w: salonName is required", ErrInvalidInput)
	}
	return validateCredentials(req.Email, req.Password)
}

func validateRegisterPartner(req *models.RegisterPartnerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return validateCredentials(req.Email, req.Password)
}

func validateCredentials(email, password string) error {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
