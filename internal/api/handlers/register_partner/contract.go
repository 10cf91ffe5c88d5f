package register_partner

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/auth/models"
)

type AuthService interface {
	RegisterPartner(ctx context.Context, req *models.RegisterPartnerRequest) (*models.PartnerAuthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
