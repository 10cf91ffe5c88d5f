package get_services

import (
	"context"

	"github.com/gcare-app/GCare-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, salonID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
