package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gcare-app/GCare-BookingService/internal/domain"
	partnerRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/partner"
	salonRepo "github.com/gcare-app/GCare-BookingService/internal/infra/storage/salon"
	"github.com/gcare-app/GCare-BookingService/internal/service/auth/models"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeSalonRepo struct {
	salons map[string]*domain.Salon
	nextID int64
}

func newFakeSalonRepo() *fakeSalonRepo {
	return &fakeSalonRepo{salons: make(map[string]*domain.Salon), nextID: 1}
}

func (r *fakeSalonRepo) Create(_ context.Context, salon *domain.Salon) (*domain.Salon, error) {
	if _, ok := r.salons[salon.Email]; ok {
		return nil, salonRepo.ErrEmailTaken
	}
	created := *salon
	created.ID = r.nextID
	r.nextID++
	r.salons[created.Email] = &created
	return &created, nil
}

func (r *fakeSalonRepo) GetByEmail(_ context.Context, email string) (*domain.Salon, error) {
	salon, ok := r.salons[email]
	if !ok {
		return nil, salonRepo.ErrSalonNotFound
	}
	copied := *salon
	return &copied, nil
}

type fakePartnerRepo struct {
	partners map[string]*domain.Partner
	nextID   int64
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{partners: make(map[string]*domain.Partner), nextID: 1}
}

func (r *fakePartnerRepo) Create(_ context.Context, partner *domain.Partner) (*domain.Partner, error) {
	if _, ok := r.partners[partner.Email]; ok {
		return nil, partnerRepo.ErrEmailTaken
	}
	created := *partner
	created.ID = r.nextID
	r.nextID++
	r.partners[created.Email] = &created
	return &created, nil
}

func (r *fakePartnerRepo) GetByEmail(_ context.Context, email string) (*domain.Partner, error) {
	partner, ok := r.partners[email]
	if !ok {
		return nil, partnerRepo.ErrPartnerNotFound
	}
	copied := *partner
	return &copied, nil
}

type stubTokens struct{}

func (stubTokens) Issue(subjectID int64, role string) (string, error) {
	return fmt.Sprintf("token-%s-%d", role, subjectID), nil
}

func newTestService() (*Service, *fakeSalonRepo, *fakePartnerRepo) {
	salons := newFakeSalonRepo()
	partners := newFakePartnerRepo()
	svc := NewService(salons, partners, stubTokens{}, stubLogger{})
	return svc, salons, partners
}

func TestRegisterSalon(t *testing.T) {
	svc, salons, _ := newTestService()

	resp, err := svc.RegisterSalon(context.Background(), &models.RegisterSalonRequest{
		OwnerName: "  Anna Lee  ",
		SalonName: "Shear Genius",
		Email:     "Anna@Example.COM",
		Password:  "correct-horse",
		Phone:     "+15550101",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-salon-1", resp.Token)
	assert.Equal(t, "Anna Lee", resp.Salon.OwnerName)
	assert.Equal(t, "anna@example.com", resp.Salon.Email)
	assert.Equal(t, string(domain.ModeSlot), resp.Salon.Mode)
	assert.Equal(t, domain.DefaultOpenTime, resp.Salon.OpenTime)
	assert.Equal(t, domain.DefaultCloseTime, resp.Salon.CloseTime)
	assert.False(t, resp.Salon.AutoConfirm)

	stored := salons.salons["anna@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestRegisterSalonValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterSalonRequest
	}{
		{
			name: "empty owner name",
			req:  models.RegisterSalonRequest{OwnerName: " ", SalonName: "S", Email: "a@b.com", Password: "longenough"},
		},
		{
			name: "empty salon name",
			req:  models.RegisterSalonRequest{OwnerName: "A", SalonName: "", Email: "a@b.com", Password: "longenough"},
		},
		{
			name: "email without at sign",
			req:  models.RegisterSalonRequest{OwnerName: "A", SalonName: "S", Email: "not-an-email", Password: "longenough"},
		},
		{
			name: "short password",
			req:  models.RegisterSalonRequest{OwnerName: "A", SalonName: "S", Email: "a@b.com", Password: "short"},
		},
	}

	svc, _, _ := newTestService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterSalon(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterSalonDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	req := &models.RegisterSalonRequest{
		OwnerName: "Anna",
		SalonName: "Shear Genius",
		Email:     "anna@example.com",
		Password:  "correct-horse",
	}
	_, err := svc.RegisterSalon(context.Background(), req)
	require.NoError(t, err)

	// Регистр email не должен обходить уникальность
	req.Email = "ANNA@example.com"
	_, err = svc.RegisterSalon(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginSalon(t *testing.T) {
	svc, salons, _ := newTestService()

	_, err := svc.RegisterSalon(context.Background(), &models.RegisterSalonRequest{
		OwnerName: "Anna",
		SalonName: "Shear Genius",
		Email:     "anna@example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)

	resp, err := svc.LoginSalon(context.Background(), &models.LoginRequest{
		Email:    "  ANNA@example.com ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-salon-1", resp.Token)
	assert.Equal(t, int64(1), resp.Salon.ID)

	_, err = svc.LoginSalon(context.Background(), &models.LoginRequest{
		Email:    "anna@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginSalon(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	archivedAt := time.Now()
	salons.salons["anna@example.com"].ArchivedAt = &archivedAt
	_, err = svc.LoginSalon(context.Background(), &models.LoginRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrSalonArchived)
}

func TestRegisterAndLoginPartner(t *testing.T) {
	svc, _, partners := newTestService()

	resp, err := svc.RegisterPartner(context.Background(), &models.RegisterPartnerRequest{
		Name:     "FixIt Mobile",
		Email:    "Fixit@Example.com",
		Password: "correct-horse",
		Phone:    "+15550102",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-partner-1", resp.Token)
	assert.Equal(t, "fixit@example.com", resp.Partner.Email)

	stored := partners.partners["fixit@example.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	login, err := svc.LoginPartner(context.Background(), &models.LoginRequest{
		Email:    "fixit@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-partner-1", login.Token)

	_, err = svc.LoginPartner(context.Background(), &models.LoginRequest{
		Email:    "fixit@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.RegisterPartner(context.Background(), &models.RegisterPartnerRequest{
		Name:     "Another",
		Email:    "fixit@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
