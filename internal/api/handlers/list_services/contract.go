package list_services

import (
	"context"

	"github.com/salonix/SLX-BookingService/internal/domain"
)

type CatalogService interface {
	ListActiveServices(ctx context.Context, salonID int64) ([]*domain.SalonService, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
